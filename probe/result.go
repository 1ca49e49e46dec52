package probe

// Result is the normalized outcome of one HTTP probe request. A successful
// result always carries a non-nil payload, even when the response body was
// empty, so callers can tell "request failed" apart from "request succeeded
// with empty body".
type Result struct {
	ok         bool
	payload    map[string]interface{}
	statusCode int
	errMsg     string
}

// Success wraps a parsed response payload into a successful result. A nil
// payload is normalized to an empty one.
func Success(payload map[string]interface{}) Result {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return Result{ok: true, payload: payload}
}

// Failure builds the "no result" sentinel for a failed request. The status
// code is zero for transport-level failures.
func Failure(statusCode int, errMsg string) Result {
	return Result{statusCode: statusCode, errMsg: errMsg}
}

// OK reports whether the request succeeded.
func (r Result) OK() bool {
	return r.ok
}

// Payload returns the parsed response payload. Nil for failed results.
func (r Result) Payload() map[string]interface{} {
	if !r.ok {
		return nil
	}
	return r.payload
}

// StatusCode returns the HTTP status code of a failed result, zero for
// transport-level failures.
func (r Result) StatusCode() int {
	return r.statusCode
}

// Error returns the diagnostic message of a failed result.
func (r Result) Error() string {
	return r.errMsg
}

// Has reports whether the payload contains the given key.
func (r Result) Has(key string) bool {
	if !r.ok {
		return false
	}
	_, ok := r.payload[key]
	return ok
}

// String returns the string value at the given key, or "" when absent or not
// a string.
func (r Result) String(key string) string {
	if !r.ok {
		return ""
	}
	s, _ := r.payload[key].(string)
	return s
}

// Items returns the array value at the given key, nil when absent or not an
// array.
func (r Result) Items(key string) []interface{} {
	if !r.ok {
		return nil
	}
	items, _ := r.payload[key].([]interface{})
	return items
}

// NestedString returns the string at payload[outer][inner], reporting
// whether it was present.
func (r Result) NestedString(outer, inner string) (string, bool) {
	if !r.ok {
		return "", false
	}
	m, ok := r.payload[outer].(map[string]interface{})
	if !ok {
		return "", false
	}
	s, ok := m[inner].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
