package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rlindsey28/chat-dice/chat"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherBroadcast(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()

	sent := chat.Broadcast{
		Room:         "tabletop",
		User:         "Alice",
		Line:         "Alice rolled 1d20: <strong>12</strong>",
		InvocationID: "8d3c",
		SentAt:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "chat.room.broadcasts" {
			return errors.New("wrong topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "tabletop" {
			return errors.New("record should be keyed by room, got " + string(key))
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var got chat.Broadcast
		if err := json.Unmarshal(value, &got); err != nil {
			return err
		}
		if !got.SentAt.Equal(sent.SentAt) || got.Line != sent.Line || got.User != sent.User {
			return errors.New("unexpected record value " + string(value))
		}
		return nil
	})

	publisher := NewPublisher("chat.room.broadcasts", producer)
	assert.NoError(t, publisher.Broadcast(context.Background(), sent))
}

func TestPublisherBroadcastFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()
	producer.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)

	publisher := NewPublisher("chat.room.broadcasts", producer)
	err := publisher.Broadcast(context.Background(), chat.Broadcast{Room: "tabletop", Line: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrNotLeaderForPartition)
}
