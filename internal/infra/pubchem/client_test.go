package pubchem

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCIDByName(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/compound/name/givinostat/cids/JSON" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"IdentifierList":{"CID":[9804992,123]}}`)
	}))
	defer ts.Close()

	c := New(ts.URL, nil)
	cid, path, err := c.CIDByName(context.Background(), "givinostat")
	if err != nil {
		t.Fatalf("CIDByName() error = %v", err)
	}
	if cid != 9804992 {
		t.Errorf("cid = %d, want first of the list", cid)
	}
	if path != "/compound/name/givinostat/cids/JSON" {
		t.Errorf("path = %q", path)
	}
}

func TestCIDByNameUnknownCompound(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"IdentifierList":{"CID":[]}}`)
	}))
	defer ts.Close()

	cid, path, err := New(ts.URL, nil).CIDByName(context.Background(), "NotARealDrug")
	if err != nil {
		t.Fatalf("CIDByName() error = %v", err)
	}
	if cid != 0 {
		t.Errorf("cid = %d, want 0", cid)
	}
	if !strings.Contains(path, "NotARealDrug") {
		t.Errorf("path = %q should embed the name", path)
	}
}

func TestCIDByNameEscapesName(t *testing.T) {
	t.Parallel()

	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		fmt.Fprint(w, `{"IdentifierList":{"CID":[1]}}`)
	}))
	defer ts.Close()

	_, _, err := New(ts.URL, nil).CIDByName(context.Background(), "beta blocker/x")
	if err != nil {
		t.Fatalf("CIDByName() error = %v", err)
	}
	if strings.Contains(strings.TrimPrefix(gotPath, "/compound/name/"), "/cids") == false {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if !strings.Contains(gotPath, "beta%20blocker%2Fx") {
		t.Errorf("path = %q, name not escaped", gotPath)
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"Fault":{"Code":"PUGREST.NotFound"}}`)
	}))
	defer ts.Close()

	_, err := New(ts.URL, nil).Fetch(context.Background(), "/compound/cid/0/classification/JSON")
	if err == nil {
		t.Fatal("Fetch() should fail on non-200")
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Errorf("error = %v", err)
	}
}

func TestFetchRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer ts.Close()

	_, err := New(ts.URL, nil).Fetch(context.Background(), "/compound/cid/1/assaysummary/JSON")
	if err == nil {
		t.Fatal("Fetch() should reject invalid JSON")
	}
}

func TestDetailPaths(t *testing.T) {
	t.Parallel()

	paths := New("", nil).DetailPaths(42)
	want := []string{
		"/compound/cid/42/property/MolecularFormula,MolecularWeight,CanonicalSMILES,HBondDonorCount,HBondAcceptorCount,RotatableBondCount,XLogP,TPSA/JSON",
		"/compound/cid/42/classification/JSON",
		"/compound/cid/42/assaysummary/JSON",
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestRequestWindowThrottles(t *testing.T) {
	t.Parallel()

	w := requestWindow{size: 2, span: 50 * time.Millisecond}
	start := time.Now()
	w.wait()
	w.wait()
	w.wait() // third call must wait out the window
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("elapsed = %v, want the window span to be enforced", elapsed)
	}
}
