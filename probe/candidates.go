package probe

import (
	"context"
	"net/http"

	"github.com/hairizuanbinnoorazman/flashprobe/session"
)

// Candidate is one (path, body shape) combination to try while discovering
// an authentication endpoint whose exact contract is not known in advance.
type Candidate struct {
	Path string
	Body map[string]interface{}
}

// Accept decides whether a successful candidate response counts as a hit.
// It may capture state from the result as a side effect.
type Accept func(res Result) bool

// FirstSuccess POSTs each candidate in order against the auth service base
// URL and short-circuits on the first response that succeeds and is accepted.
// A nil accept treats any successful response as a hit. Exhausting every
// candidate reports overall failure.
func FirstSuccess(ctx context.Context, c *Client, sess *session.Session, candidates []Candidate, accept Accept) (Result, Candidate, bool) {
	for _, cand := range candidates {
		res := c.Do(ctx, sess, Request{
			Method:   http.MethodPost,
			Path:     cand.Path,
			Body:     cand.Body,
			AuthBase: true,
		})
		if !res.OK() {
			continue
		}
		if accept == nil || accept(res) {
			return res, cand, true
		}
	}
	return Result{}, Candidate{}, false
}
