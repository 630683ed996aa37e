package main

import (
	"os"

	"github.com/rlindsey28/chat-dice/rolldice"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr, rolldice.DefaultSource).Execute(); err != nil {
		os.Exit(1)
	}
}
