package analysis

import (
	"time"
)

// ReportID identifier type
type ReportID string

// Conclusion enum
type Conclusion string

const (
	ConclusionPositive      Conclusion = "Positive"
	ConclusionNegative      Conclusion = "Negative"
	ConclusionIndeterminate Conclusion = "Indeterminate"
)

// Aggregate Root: Report, one evaluation of a compound against cardiac fibrosis
type Report struct {
	ID          ReportID   `json:"id"`
	Compound    string     `json:"compound"`
	Conclusion  Conclusion `json:"conclusion"`
	Relevance   int        `json:"relevance"`
	Confidence  int        `json:"confidence"`
	Rationale   string     `json:"rationale"`
	ToolTrace   []string   `json:"tool_trace"`
	ArtifactURL string     `json:"artifact_url,omitempty"`
	DurationMS  int64      `json:"duration_ms"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Verdict is what the model produces for a compound brief.
// Relevance and confidence are 0-100 by contract with the model prompt;
// values outside that range are passed through, not clamped.
type Verdict struct {
	Conclusion Conclusion `json:"conclusion"`
	Relevance  int        `json:"relevance"`
	Confidence int        `json:"confidence"`
	Rationale  string     `json:"rationale"`
}
