package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"

	domain "github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/domain/analysis"
	"github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/infra/ai/prompt"
)

const maxTokens = 2048

// Pricing is the per-million-token cost used for usage logging.
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

type Client struct {
	*openai.Client
	Model   string
	Pricing Pricing
}

// NewClient builds an API client. An empty baseURL uses the default OpenAI
// endpoint; a non-empty one targets a compatible self-hosted model.
func NewClient(apiKey, baseURL, model string, pricing Pricing) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model, Pricing: pricing}
}

// Verdict asks the model to score a compound brief and decodes the JSON reply.
// A reply that is not valid JSON degrades to an Indeterminate verdict instead
// of failing the evaluation.
func (c *Client) Verdict(ctx context.Context, brief string) (domain.Verdict, error) {
	model := c.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(brief)},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	c.logUsage(model, resp.Usage)

	return ParseVerdict(resp.Choices[0].Message.Content), nil
}

func (c *Client) logUsage(model string, u openai.Usage) {
	cost := float64(u.PromptTokens)/1_000_000*c.Pricing.InputPerMillion +
		float64(u.CompletionTokens)/1_000_000*c.Pricing.OutputPerMillion
	log.Printf("llm usage model=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d cost=%.6f",
		model, u.PromptTokens, u.CompletionTokens, u.TotalTokens, cost)
}

// ParseVerdict decodes the model's JSON reply. Missing keys get the neutral
// defaults (relevance 50, confidence 0) and the conclusion label is
// normalized to title case.
func ParseVerdict(content string) domain.Verdict {
	var obj struct {
		Conclusion *string `json:"conclusion"`
		Relevance  *int    `json:"relevance"`
		Confidence *int    `json:"confidence"`
		Rationale  string  `json:"rationale"`
	}
	if err := json.Unmarshal([]byte(content), &obj); err != nil {
		return domain.Verdict{
			Conclusion: domain.ConclusionIndeterminate,
			Relevance:  50,
			Confidence: 0,
			Rationale:  "Could not parse model output",
		}
	}

	v := domain.Verdict{
		Conclusion: domain.ConclusionIndeterminate,
		Relevance:  50,
		Confidence: 0,
		Rationale:  obj.Rationale,
	}
	if obj.Conclusion != nil {
		v.Conclusion = domain.Conclusion(titleCase(*obj.Conclusion))
	}
	if obj.Relevance != nil {
		v.Relevance = *obj.Relevance
	}
	if obj.Confidence != nil {
		v.Confidence = *obj.Confidence
	}
	return v
}

func titleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
