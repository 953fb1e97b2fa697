package api

import (
	"net/http"
	"strings"
)

// Identity returns a best-effort identifier for the requesting user: the
// basic-auth username if present, then the Remote-User header set by a
// fronting proxy. When neither is available it returns the empty string.
func Identity(r *http.Request) string {
	if username, _, ok := r.BasicAuth(); ok && username != "" {
		return username
	}
	if user := strings.TrimSpace(r.Header.Get("Remote-User")); user != "" {
		return user
	}
	return ""
}
