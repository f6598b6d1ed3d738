package ports

import (
	"context"
	"encoding/json"
)

// ScoringRequest is what the scoring provider needs to evaluate a product.
type ScoringRequest struct {
	ProductName string
	Category    string
	ModuleCode  string
}

// ScoringClient performs one request/response exchange with the text-generation
// provider. The reply is guaranteed to be a JSON object; its fields are not checked.
type ScoringClient interface {
	Score(ctx context.Context, req ScoringRequest) (json.RawMessage, error)
}

// ChatClient answers a free-text assistant message.
type ChatClient interface {
	Chat(ctx context.Context, message string) (string, error)
}
