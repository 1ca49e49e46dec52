package probe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/hairizuanbinnoorazman/flashprobe/logger"
	"github.com/hairizuanbinnoorazman/flashprobe/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler replies per path and records every request it saw.
type recordingHandler struct {
	mu        sync.Mutex
	responses map[string]func(w http.ResponseWriter, r *http.Request)
	requests  []string
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.requests = append(h.requests, r.URL.Path)
	h.mu.Unlock()

	if fn, ok := h.responses[r.URL.Path]; ok {
		fn(w, r)
		return
	}
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"message":"not found"}`))
}

func jsonReply(status int, payload map[string]interface{}) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(payload)
	}
}

func TestFirstSuccess_ShortCircuitsOnFirstHit(t *testing.T) {
	handler := &recordingHandler{
		responses: map[string]func(w http.ResponseWriter, r *http.Request){
			"/auth/register": jsonReply(http.StatusCreated, map[string]interface{}{"message": "created"}),
		},
	}
	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient(server.URL, server.URL, logger.NewTestLogger())
	candidates := []Candidate{
		{Path: "/api/auth/signup", Body: map[string]interface{}{"name": "n"}},
		{Path: "/auth/register", Body: map[string]interface{}{"name": "n"}},
		{Path: "/auth/signup", Body: map[string]interface{}{"name": "n"}},
	}

	res, hit, ok := FirstSuccess(context.Background(), client, session.New(), candidates, nil)

	require.True(t, ok)
	assert.Equal(t, "/auth/register", hit.Path)
	assert.Equal(t, "created", res.String("message"))
	// search stopped after the hit, the third candidate was never tried
	assert.Equal(t, []string{"/api/auth/signup", "/auth/register"}, handler.requests)
}

func TestFirstSuccess_ExhaustionIsOverallFailure(t *testing.T) {
	handler := &recordingHandler{responses: map[string]func(w http.ResponseWriter, r *http.Request){}}
	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient(server.URL, server.URL, logger.NewTestLogger())
	candidates := []Candidate{
		{Path: "/api/auth/signup", Body: map[string]interface{}{"name": "n"}},
		{Path: "/auth/register", Body: map[string]interface{}{"username": "n"}},
	}

	_, _, ok := FirstSuccess(context.Background(), client, session.New(), candidates, nil)

	assert.False(t, ok)
	assert.Len(t, handler.requests, 2)
}

func TestFirstSuccess_AcceptRejectsSuccessfulResponse(t *testing.T) {
	// first endpoint answers 200 but without a token; the accept predicate
	// must push the search on to the next candidate
	handler := &recordingHandler{
		responses: map[string]func(w http.ResponseWriter, r *http.Request){
			"/api/auth/login": jsonReply(http.StatusOK, map[string]interface{}{"message": "ok"}),
			"/auth/login":     jsonReply(http.StatusOK, map[string]interface{}{"token": "t1"}),
		},
	}
	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient(server.URL, server.URL, logger.NewTestLogger())
	candidates := []Candidate{
		{Path: "/api/auth/login", Body: map[string]interface{}{"email": "e"}},
		{Path: "/auth/login", Body: map[string]interface{}{"email": "e"}},
	}

	sess := session.New()
	res, hit, ok := FirstSuccess(context.Background(), client, sess, candidates, func(res Result) bool {
		return sess.CaptureLogin(res.Payload())
	})

	require.True(t, ok)
	assert.Equal(t, "/auth/login", hit.Path)
	assert.Equal(t, "t1", res.String("token"))
	assert.Equal(t, "t1", sess.AccessToken)
}

func TestFirstSuccess_SendsCandidateBody(t *testing.T) {
	var bodies []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, r.ContentLength)
		r.Body.Read(b)
		bodies = append(bodies, string(b))
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"bad shape"}`))
	})
	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient(server.URL, server.URL, logger.NewTestLogger())
	candidates := []Candidate{
		{Path: "/api/auth/signup", Body: map[string]interface{}{"name": "Test User"}},
		{Path: "/api/auth/signup", Body: map[string]interface{}{"username": "Test User"}},
	}

	_, _, ok := FirstSuccess(context.Background(), client, session.New(), candidates, nil)

	assert.False(t, ok)
	require.Len(t, bodies, 2)
	assert.JSONEq(t, `{"name":"Test User"}`, bodies[0])
	assert.JSONEq(t, `{"username":"Test User"}`, bodies[1])
}
