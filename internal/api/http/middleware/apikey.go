package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/userbase/userbase-server/internal/logger"
)

// HeaderName is the request header carrying the static API key.
const HeaderName = "x-api-key"

const docsPathPrefix = "/swagger"

// APIKey rejects mutating requests that do not carry the expected static
// API key. Read-only requests and the documentation path bypass the check.
type APIKey struct {
	key    string
	logger *logger.Logger
}

// NewAPIKey creates a new APIKey middleware instance.
func NewAPIKey(key string, logger *logger.Logger) *APIKey {
	return &APIKey{key: key, logger: logger}
}

// Handle wraps next with the API key check.
func (m *APIKey) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(strings.ToLower(r.URL.Path), docsPathPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		if r.Method != http.MethodGet {
			supplied := r.Header.Get(HeaderName)
			if m.key == "" || supplied != m.key {
				m.logger.Info("rejected request without valid api key", "method", r.Method, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":  "Unauthorized",
					"detail": "Provide header '" + HeaderName + "'.",
				})
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
