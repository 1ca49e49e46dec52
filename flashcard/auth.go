package flashcard

import (
	"context"
	"fmt"

	"github.com/hairizuanbinnoorazman/flashprobe/probe"
	"github.com/hairizuanbinnoorazman/flashprobe/session"
)

// Credentials are the signup/login details used by the auth probing steps.
type Credentials struct {
	Email    string
	Password string
	Name     string
}

// SignupCandidates returns the ordered (path, body shape) combinations tried
// during signup discovery: for each known path, a body keyed by "name" first,
// then by "username".
func SignupCandidates(creds Credentials) []probe.Candidate {
	paths := []string{"/api/auth/signup", "/auth/register", "/auth/signup"}

	candidates := make([]probe.Candidate, 0, len(paths)*2)
	for _, path := range paths {
		candidates = append(candidates,
			probe.Candidate{Path: path, Body: map[string]interface{}{
				"email":    creds.Email,
				"password": creds.Password,
				"name":     creds.Name,
			}},
			probe.Candidate{Path: path, Body: map[string]interface{}{
				"email":    creds.Email,
				"password": creds.Password,
				"username": creds.Name,
			}},
		)
	}
	return candidates
}

// LoginCandidates returns the ordered combinations tried during login
// discovery: for each known path, bodies keyed by email/password and by
// username/password.
func LoginCandidates(creds Credentials) []probe.Candidate {
	paths := []string{"/api/auth/login", "/auth/login"}

	candidates := make([]probe.Candidate, 0, len(paths)*2)
	for _, path := range paths {
		candidates = append(candidates,
			probe.Candidate{Path: path, Body: map[string]interface{}{
				"email":    creds.Email,
				"password": creds.Password,
			}},
			probe.Candidate{Path: path, Body: map[string]interface{}{
				"username": creds.Email,
				"password": creds.Password,
			}},
		)
	}
	return candidates
}

// Signup probes the candidate registration endpoints until one accepts the
// new user.
func Signup(c *probe.Client, creds Credentials) probe.Step {
	return probe.Step{
		Name: "User Registration",
		Run: func(ctx context.Context, sess *session.Session) (bool, string) {
			_, hit, ok := probe.FirstSuccess(ctx, c, sess, SignupCandidates(creds), nil)
			if !ok {
				return false, "failed to register user with any endpoint"
			}
			return true, fmt.Sprintf("registered via %s", hit.Path)
		},
	}
}

// Login probes the candidate login endpoints until one returns a usable
// token, capturing it (plus refresh token and user id) into the session.
func Login(c *probe.Client, creds Credentials) probe.Step {
	return probe.Step{
		Name: "User Login",
		Run: func(ctx context.Context, sess *session.Session) (bool, string) {
			_, hit, ok := probe.FirstSuccess(ctx, c, sess, LoginCandidates(creds), func(res probe.Result) bool {
				return sess.CaptureLogin(res.Payload())
			})
			if !ok {
				return false, "login failed with all endpoint combinations"
			}
			return true, fmt.Sprintf("logged in as %s via %s", creds.Email, hit.Path)
		},
	}
}
