package llm

import (
	"context"
	"time"
)

// Message is one chat message in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CostInfo reports usage-based cost for one completion call.
type CostInfo struct {
	Cost      float64        `json:"cost"`
	Model     string         `json:"model"`
	Timestamp time.Time      `json:"timestamp"`
	Usage     map[string]int `json:"usage"`
}

// Completion is the proxied model reply plus its cost.
type Completion struct {
	Response string   `json:"response"`
	CostInfo CostInfo `json:"cost_info"`
}

// Completer port (interface for the raw chat-completion proxy)
type Completer interface {
	Complete(ctx context.Context, msgs []Message) (*Completion, error)
}
