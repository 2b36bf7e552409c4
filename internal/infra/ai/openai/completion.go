package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/domain/llm"
)

// Complete forwards a raw chat completion to the configured model and
// attaches cost information derived from token usage.
func (c *Client) Complete(ctx context.Context, msgs []llm.Message) (*llm.Completion, error) {
	model := c.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}
	c.logUsage(model, resp.Usage)

	u := resp.Usage
	cost := float64(u.PromptTokens)/1_000_000*c.Pricing.InputPerMillion +
		float64(u.CompletionTokens)/1_000_000*c.Pricing.OutputPerMillion

	return &llm.Completion{
		Response: resp.Choices[0].Message.Content,
		CostInfo: llm.CostInfo{
			Cost:      cost,
			Model:     model,
			Timestamp: time.Now(),
			Usage: map[string]int{
				"prompt_tokens":     u.PromptTokens,
				"completion_tokens": u.CompletionTokens,
				"total_tokens":      u.TotalTokens,
			},
		},
	}, nil
}
