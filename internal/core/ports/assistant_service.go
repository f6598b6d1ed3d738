package ports

import (
	"context"
	"time"
)

// ChatReply is the assistant's answer to one message.
type ChatReply struct {
	Response  string
	Timestamp time.Time
}

type AssistantService interface {
	Chat(ctx context.Context, message string) (*ChatReply, error)
}
