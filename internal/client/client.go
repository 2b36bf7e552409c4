package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// GenericFailureMessage is used when the backend fails without a readable
// error payload.
const GenericFailureMessage = "Failed to analyze compound"

// ErrBlankCompound is returned when Analyze is called with an empty or
// whitespace-only compound name; such calls never reach the network.
var ErrBlankCompound = errors.New("compound name is blank")

// AnalysisError is the failure arm of an analysis outcome: something the
// user can be told, whether it came from the backend's detail field or a
// transport fault.
type AnalysisError struct {
	Message string
}

func (e *AnalysisError) Error() string { return e.Message }

// AnalysisClient submits compounds to the backend analysis endpoint.
type AnalysisClient struct {
	baseURL string
	http    *http.Client
}

// NewAnalysisClient builds a client for the given backend base URL. A nil
// httpClient uses http.DefaultClient; no retries and no flow-level timeout
// are applied here.
func NewAnalysisClient(baseURL string, httpClient *http.Client) *AnalysisClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &AnalysisClient{baseURL: baseURL, http: httpClient}
}

type analyzeRequest struct {
	DrugName string `json:"drug_name"`
}

type analyzeResponse struct {
	Conclusion string    `json:"conclusion"`
	Rationale  string    `json:"rationale"`
	Confidence int       `json:"confidence"`
	Relevance  int       `json:"relevance"`
	ToolTrace  ToolTrace `json:"tool_trace"`
}

// Analyze issues exactly one POST to the analysis endpoint and maps the
// reply into a Report or an *AnalysisError. Wall-clock time is measured
// from just before dispatch until the response body is fully read.
func (c *AnalysisClient) Analyze(ctx context.Context, compoundName string) (*Report, error) {
	if isBlank(compoundName) {
		return nil, ErrBlankCompound
	}
	if c.baseURL == "" {
		return nil, &AnalysisError{Message: "analysis backend URL is not configured"}
	}

	payload, err := json.Marshal(analyzeRequest{DrugName: compoundName})
	if err != nil {
		return nil, &AnalysisError{Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/analyze_fibrosis", bytes.NewReader(payload))
	if err != nil {
		return nil, &AnalysisError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &AnalysisError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		return nil, &AnalysisError{Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &AnalysisError{Message: failureMessage(body)}
	}

	var parsed analyzeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &AnalysisError{Message: GenericFailureMessage}
	}

	return &Report{
		Compound:   compoundName,
		Conclusion: parsed.Conclusion,
		Rationale:  parsed.Rationale,
		Confidence: parsed.Confidence,
		Relevance:  parsed.Relevance,
		ToolTrace:  parsed.ToolTrace,
		ElapsedMS:  elapsed.Milliseconds(),
		Elapsed:    FormatElapsed(elapsed.Milliseconds()),
	}, nil
}

// failureMessage pulls the backend's detail field out of an error body,
// falling back to the generic message when there is none.
func failureMessage(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return GenericFailureMessage
}
