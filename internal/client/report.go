package client

import "encoding/json"

// NoToolTraceMessage is shown when an analysis came back without any
// recorded tool calls.
const NoToolTraceMessage = "No tool call information available."

// ToolTrace is the backend's tool_trace field, which may arrive as a single
// string, an array of strings, or not at all.
type ToolTrace []string

func (t *ToolTrace) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*t = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*t = ToolTrace{one}
	return nil
}

// Lines returns the trace entries for display, in order, or the fallback
// message when the trace is absent or empty.
func (t ToolTrace) Lines() []string {
	if len(t) == 0 {
		return []string{NoToolTraceMessage}
	}
	return t
}

// Report is a successful analysis outcome as rendered by the result view.
type Report struct {
	Compound   string    `json:"compound"`
	Conclusion string    `json:"conclusion"`
	Rationale  string    `json:"rationale"`
	Confidence int       `json:"confidence"`
	Relevance  int       `json:"relevance"`
	ToolTrace  ToolTrace `json:"tool_trace"`
	ElapsedMS  int64     `json:"elapsed_ms"`
	Elapsed    string    `json:"elapsed"`
}
