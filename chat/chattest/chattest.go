// Package chattest provides test doubles for the chat host.
package chattest

import (
	"context"
	"sync"

	"github.com/rlindsey28/chat-dice/chat"
)

// Sink records every broadcast, failing with Err when it is set.
type Sink struct {
	mu         sync.Mutex
	broadcasts []chat.Broadcast
	Err        error
}

func (s *Sink) Broadcast(_ context.Context, b chat.Broadcast) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.broadcasts = append(s.broadcasts, b)
	return nil
}

// Broadcasts returns a copy of what has been recorded.
func (s *Sink) Broadcasts() []chat.Broadcast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chat.Broadcast(nil), s.broadcasts...)
}

// Lines returns the recorded broadcast lines in order.
func (s *Sink) Lines() []string {
	var lines []string
	for _, b := range s.Broadcasts() {
		lines = append(lines, b.Line)
	}
	return lines
}
