package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestAnalyzeSuccess(t *testing.T) {
	t.Parallel()

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Method != http.MethodPost || r.URL.Path != "/analyze_fibrosis" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			DrugName string `json:"drug_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.DrugName != "givinostat" {
			t.Errorf("drug_name = %q, want givinostat", body.DrugName)
		}
		fmt.Fprint(w, `{"conclusion":"Positive","rationale":"HDAC inhibitor","confidence":80,"relevance":75,"tool_trace":["/compound/name/givinostat/cids/JSON"]}`)
	}))
	defer ts.Close()

	c := NewAnalysisClient(ts.URL, nil)
	report, err := c.Analyze(context.Background(), "givinostat")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.Conclusion != "Positive" || report.Confidence != 80 || report.Relevance != 75 {
		t.Errorf("report = %+v", report)
	}
	if report.Compound != "givinostat" {
		t.Errorf("compound = %q", report.Compound)
	}
	if len(report.ToolTrace) != 1 {
		t.Errorf("tool trace = %v", report.ToolTrace)
	}
	if report.ElapsedMS < 0 || report.Elapsed == "" {
		t.Errorf("elapsed not populated: %d %q", report.ElapsedMS, report.Elapsed)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("calls = %d, want exactly 1", n)
	}
}

func TestAnalyzeErrorDetail(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"detail": "rate limited"}`)
	}))
	defer ts.Close()

	_, err := NewAnalysisClient(ts.URL, nil).Analyze(context.Background(), "jq1")
	var ae *AnalysisError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *AnalysisError", err)
	}
	if ae.Message != "rate limited" {
		t.Errorf("message = %q, want rate limited", ae.Message)
	}
}

func TestAnalyzeErrorWithoutBody(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream blew up")
	}))
	defer ts.Close()

	_, err := NewAnalysisClient(ts.URL, nil).Analyze(context.Background(), "jq1")
	var ae *AnalysisError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *AnalysisError", err)
	}
	if ae.Message != GenericFailureMessage {
		t.Errorf("message = %q, want %q", ae.Message, GenericFailureMessage)
	}
}

func TestAnalyzeMalformedSuccessBody(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json at all")
	}))
	defer ts.Close()

	_, err := NewAnalysisClient(ts.URL, nil).Analyze(context.Background(), "jq1")
	var ae *AnalysisError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *AnalysisError", err)
	}
	if ae.Message != GenericFailureMessage {
		t.Errorf("message = %q, want %q", ae.Message, GenericFailureMessage)
	}
}

func TestAnalyzeTransportFault(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // server gone, connection refused

	_, err := NewAnalysisClient(ts.URL, nil).Analyze(context.Background(), "jq1")
	var ae *AnalysisError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *AnalysisError", err)
	}
	if ae.Message == "" {
		t.Error("message should carry the fault description")
	}
}

func TestAnalyzeBlankNameNeverDispatches(t *testing.T) {
	t.Parallel()

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	c := NewAnalysisClient(ts.URL, nil)
	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := c.Analyze(context.Background(), name); !errors.Is(err, ErrBlankCompound) {
			t.Errorf("Analyze(%q) error = %v, want ErrBlankCompound", name, err)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("calls = %d, want 0", n)
	}
}
