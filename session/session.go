// Package session holds the mutable state threaded through a probe run:
// tokens and resource identifiers captured from earlier responses and
// consumed by later steps.
package session

// Session is the run-scoped state shared by sequential probe steps. It is
// initialized empty, populated opportunistically as responses come back, and
// discarded when the run ends. The runner is strictly sequential, so no
// locking is needed.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	DeckID       string
	CardID       string
	PackageID    string
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// HasToken reports whether an access token has been captured.
func (s *Session) HasToken() bool {
	return s.AccessToken != ""
}

// HasDeck reports whether a deck identifier has been captured.
func (s *Session) HasDeck() bool {
	return s.DeckID != ""
}

// CaptureLogin extracts authentication state from a login response payload.
// The access token is taken from the "token" key, falling back to
// "accessToken". The user id is taken from "userId", falling back to a
// nested "_id" under "user". Returns false, leaving the session untouched,
// when the payload carries no token under either key.
func (s *Session) CaptureLogin(payload map[string]interface{}) bool {
	token, ok := stringField(payload, "token")
	if !ok {
		token, ok = stringField(payload, "accessToken")
	}
	if !ok {
		return false
	}

	s.AccessToken = token
	if refresh, ok := stringField(payload, "refreshToken"); ok {
		s.RefreshToken = refresh
	}
	if userID, ok := stringField(payload, "userId"); ok {
		s.UserID = userID
	} else if user, ok := payload["user"].(map[string]interface{}); ok {
		if userID, ok := stringField(user, "_id"); ok {
			s.UserID = userID
		}
	}

	return true
}

func stringField(m map[string]interface{}, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	if !ok || str == "" {
		return "", false
	}
	return str, true
}
