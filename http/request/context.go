package request

import "net/http"

type ContextKey int

const (
	ClientIPContextKey ContextKey = iota
	SessionIDContextKey
	SessionIsNewContextKey
)

func getContextStringValue(r *http.Request, key ContextKey) string {
	if v := r.Context().Value(key); v != nil {
		if value, valid := v.(string); valid {
			return value
		}
	}
	return ""
}

// ClientIP returns the client IP address stored in the context.
func ClientIP(r *http.Request) string {
	return getContextStringValue(r, ClientIPContextKey)
}

// SessionID returns the browser session id stored in the context by the
// session middleware.
func SessionID(r *http.Request) string {
	return getContextStringValue(r, SessionIDContextKey)
}

// SessionIsNew reports whether this request is the session's first contact.
func SessionIsNew(r *http.Request) bool {
	if v := r.Context().Value(SessionIsNewContextKey); v != nil {
		if value, valid := v.(bool); valid {
			return value
		}
	}
	return false
}
