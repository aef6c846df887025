package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sitegrid/sitegrid/pkg/pipeline"
	"github.com/sitegrid/sitegrid/pkg/store"
)

const testURLSource = `https://example.com/
https://example.com/blog
https://example.com/blog/first-post
https://example.com/shop
`

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	st := store.NewMemoryStore()
	srv := New(runner, st, logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, st
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got, want := resp.StatusCode, http.StatusOK; got != want {
		t.Fatalf("status = %d, want %d", got, want)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestLayoutEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/layout", pipeline.Options{
		Source: testURLSource,
		Format: "urls",
	})
	defer resp.Body.Close()

	if got, want := resp.StatusCode, http.StatusOK; got != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want %d: %s", got, want, body)
	}

	var out layoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.ForestHash == "" {
		t.Error("forest hash missing")
	}
	if got, want := out.Stats.NodeCount, 4; got != want {
		t.Errorf("node count = %d, want %d", got, want)
	}
	if got, want := len(out.Document.Nodes), 4; got != want {
		t.Errorf("document nodes = %d, want %d", got, want)
	}
	for _, n := range out.Document.Nodes {
		if n.Pos == nil {
			t.Errorf("node %s has no position", n.ID)
		}
	}
}

func TestLayoutEndpoint_BadRequest(t *testing.T) {
	ts, _ := newTestServer(t)

	cases := []struct {
		name string
		body any
	}{
		{"missing source", pipeline.Options{Format: "urls"}},
		{"bad format", pipeline.Options{Source: testURLSource, Format: "xml"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/layout", tc.body)
			defer resp.Body.Close()
			if got, want := resp.StatusCode, http.StatusBadRequest; got != want {
				t.Errorf("status = %d, want %d", got, want)
			}
		})
	}
}

func TestRenderEndpoint_SVG(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/render", pipeline.Options{
		Source:  testURLSource,
		Format:  "urls",
		Formats: []string{pipeline.FormatSVG},
	})
	defer resp.Body.Close()

	if got, want := resp.StatusCode, http.StatusOK; got != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want %d: %s", got, want, body)
	}
	if got, want := resp.Header.Get("Content-Type"), "image/svg+xml"; got != want {
		t.Errorf("content type = %q, want %q", got, want)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("response is not svg markup")
	}
}

func TestRenderEndpoint_RequiresSingleFormat(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/render", pipeline.Options{
		Source:  testURLSource,
		Format:  "urls",
		Formats: []string{pipeline.FormatSVG, pipeline.FormatJSON},
	})
	defer resp.Body.Close()

	if got, want := resp.StatusCode, http.StatusBadRequest; got != want {
		t.Errorf("status = %d, want %d", got, want)
	}
}

func TestDiagramLifecycle(t *testing.T) {
	ts, _ := newTestServer(t)

	// Compute a document via the layout endpoint.
	resp := postJSON(t, ts.URL+"/api/layout", pipeline.Options{
		Source: testURLSource,
		Format: "urls",
	})
	var out layoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	// Store it.
	put := putDiagramRequest{Name: "example site", Document: out.Document}
	data, _ := json.Marshal(put)
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/diagrams/example", bytes.NewReader(data))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got, want := resp.StatusCode, http.StatusOK; got != want {
		t.Fatalf("put status = %d, want %d", got, want)
	}

	// List shows it.
	resp, err = http.Get(ts.URL + "/api/diagrams/")
	if err != nil {
		t.Fatal(err)
	}
	var list map[string][]string
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got, want := fmt.Sprint(list["ids"]), "[example]"; got != want {
		t.Errorf("ids = %s, want %s", got, want)
	}

	// Fetch it back.
	resp, err = http.Get(ts.URL + "/api/diagrams/example")
	if err != nil {
		t.Fatal(err)
	}
	var rec store.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got, want := rec.Name, "example site"; got != want {
		t.Errorf("name = %q, want %q", got, want)
	}
	if got, want := len(rec.Document.Nodes), len(out.Document.Nodes); got != want {
		t.Errorf("stored nodes = %d, want %d", got, want)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}

	// Delete it.
	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/diagrams/example", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got, want := resp.StatusCode, http.StatusNoContent; got != want {
		t.Errorf("delete status = %d, want %d", got, want)
	}

	resp, err = http.Get(ts.URL + "/api/diagrams/example")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got, want := resp.StatusCode, http.StatusNotFound; got != want {
		t.Errorf("get after delete status = %d, want %d", got, want)
	}
}

func TestPutDiagram_EmptyDocument(t *testing.T) {
	ts, _ := newTestServer(t)

	data, _ := json.Marshal(putDiagramRequest{})
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/diagrams/empty", bytes.NewReader(data))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got, want := resp.StatusCode, http.StatusBadRequest; got != want {
		t.Errorf("status = %d, want %d", got, want)
	}
}

func TestDiagramsWithoutStore(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(pipeline.NewRunner(nil, nil, logger), nil, logger)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/diagrams/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got, want := resp.StatusCode, http.StatusServiceUnavailable; got != want {
		t.Errorf("status = %d, want %d", got, want)
	}
}
