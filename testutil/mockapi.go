// Package testutil provides test helpers: an in-memory database and a mock
// flashcard API server.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// RecordedRequest is one request the mock API received.
type RecordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]interface{}
}

// MockAPI is a fake flashcard backend. Tests register routes with canned
// responses and assert on the requests the probe sent.
type MockAPI struct {
	Server *httptest.Server

	router *mux.Router
	mu     sync.Mutex
	seen   []RecordedRequest
}

// NewMockAPI starts a mock API server that is shut down with the test.
func NewMockAPI(t *testing.T) *MockAPI {
	t.Helper()

	m := &MockAPI{router: mux.NewRouter()}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.record(r)
		m.router.ServeHTTP(w, r)
	}))
	t.Cleanup(m.Server.Close)
	return m
}

// URL returns the base URL of the mock server.
func (m *MockAPI) URL() string {
	return m.Server.URL
}

// Handle registers a canned JSON response for the given method and path.
// Paths may contain mux variables, e.g. /api/decks/{id}.
func (m *MockAPI) Handle(method, path string, status int, payload interface{}) {
	m.HandleFunc(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if payload != nil {
			json.NewEncoder(w).Encode(payload)
		}
	})
}

// HandleFunc registers a custom handler for the given method and path.
func (m *MockAPI) HandleFunc(method, path string, handler http.HandlerFunc) {
	m.router.HandleFunc(path, handler).Methods(method)
}

// Requests returns a copy of every request received so far.
func (m *MockAPI) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]RecordedRequest, len(m.seen))
	copy(out, m.seen)
	return out
}

// RequestsTo returns the recorded requests matching the given method and
// exact path.
func (m *MockAPI) RequestsTo(method, path string) []RecordedRequest {
	var out []RecordedRequest
	for _, req := range m.Requests() {
		if req.Method == method && req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

func (m *MockAPI) record(r *http.Request) {
	rec := RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Auth:   r.Header.Get("Authorization"),
	}
	if r.Body != nil {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			rec.Body = body
		}
	}

	m.mu.Lock()
	m.seen = append(m.seen, rec)
	m.mu.Unlock()
}
