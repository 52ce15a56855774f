package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/JonMunkholm/TableConverter/internal/logging"
)

// API key errors passed to the reject callback.
var (
	ErrMissingAPIKey = errors.New("missing API key")
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// APIKeyHeader carries the client key.
const APIKeyHeader = "X-API-Key"

// RejectFunc writes the response for a refused request.
type RejectFunc func(w http.ResponseWriter, r *http.Request, err error, status int)

// APIKeyAuth checks the X-API-Key header against keys. When required is
// false every request passes. When required is true and keys is empty every
// request is refused.
func APIKeyAuth(required bool, keys []string, reject RejectFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !required {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logging.FromContext(r.Context())

			key := r.Header.Get(APIKeyHeader)
			if key == "" {
				logger.Warn("auth: missing API key", "path", r.URL.Path, "ip", clientIP(r.RemoteAddr))
				reject(w, r, ErrMissingAPIKey, http.StatusUnauthorized)
				return
			}
			if !validAPIKey(key, keys) {
				logger.Warn("auth: invalid API key", "path", r.URL.Path, "ip", clientIP(r.RemoteAddr))
				reject(w, r, ErrInvalidAPIKey, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// validAPIKey compares against every key in constant time.
func validAPIKey(key string, keys []string) bool {
	match := 0
	for _, k := range keys {
		match |= subtle.ConstantTimeCompare([]byte(key), []byte(k))
	}
	return match == 1
}
