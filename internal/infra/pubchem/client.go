package pubchem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// DefaultBaseURL is the public PUG-REST endpoint.
const DefaultBaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"

// PubChem allows at most 5 requests per second per client.
const (
	rateWindowSize = 5
	rateWindowSpan = time.Second
)

// Client talks to the PubChem PUG-REST API. All methods return the request
// path alongside the payload so callers can record a tool trace.
type Client struct {
	baseURL string
	http    *http.Client
	window  requestWindow
}

// New builds a client. An empty baseURL selects the public endpoint,
// a nil httpClient gets a 30 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		window:  requestWindow{size: rateWindowSize, span: rateWindowSpan},
	}
}

// requestWindow is a sliding-window limiter: at most size calls per span.
type requestWindow struct {
	mu    sync.Mutex
	size  int
	span  time.Duration
	times []time.Time
}

func (w *requestWindow) wait() {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if len(w.times) == w.size {
		if elapsed := now.Sub(w.times[0]); elapsed < w.span {
			time.Sleep(w.span - elapsed)
			now = time.Now()
		}
		w.times = w.times[1:]
	}
	w.times = append(w.times, now)
}

// Fetch performs one GET against the PUG-REST path (beginning "/compound/...")
// and returns the raw JSON payload.
func (c *Client) Fetch(ctx context.Context, path string) (json.RawMessage, error) {
	c.window.wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pubchem: status %d for %s", resp.StatusCode, path)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("pubchem: invalid JSON for %s", path)
	}
	return json.RawMessage(body), nil
}

// CIDByName resolves a compound name to its first CID. A compound unknown to
// PubChem yields cid 0 with no error; the caller decides what that means.
func (c *Client) CIDByName(ctx context.Context, name string) (int64, string, error) {
	path := fmt.Sprintf("/compound/name/%s/cids/JSON", url.PathEscape(name))
	raw, err := c.Fetch(ctx, path)
	if err != nil {
		return 0, path, err
	}

	var payload struct {
		IdentifierList struct {
			CID []int64 `json:"CID"`
		} `json:"IdentifierList"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return 0, path, fmt.Errorf("pubchem: decode cid list: %w", err)
	}
	if len(payload.IdentifierList.CID) == 0 {
		return 0, path, nil
	}
	return payload.IdentifierList.CID[0], path, nil
}

// DetailPaths lists the record lookups performed for a resolved compound.
func (c *Client) DetailPaths(cid int64) []string {
	return []string{
		fmt.Sprintf("/compound/cid/%d/property/MolecularFormula,MolecularWeight,CanonicalSMILES,HBondDonorCount,HBondAcceptorCount,RotatableBondCount,XLogP,TPSA/JSON", cid),
		fmt.Sprintf("/compound/cid/%d/classification/JSON", cid),
		fmt.Sprintf("/compound/cid/%d/assaysummary/JSON", cid),
	}
}
