// Package auth provides HTTP middleware for bearer token authentication.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// NewAuthMiddleware returns an HTTP middleware that enforces bearer token
// authentication on the MCP endpoint. If token is empty, authentication is
// disabled and every request reaches next.
//
// When enabled, requests must carry
//
//	Authorization: Bearer <token>
//
// with a case-sensitive prefix and exactly one space. Anything else gets a
// 401 and next is never called. Rejections are logged at warn on logger,
// which may be nil.
func NewAuthMiddleware(token string, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	want := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				reject(w, r, logger, "missing bearer prefix")
				return
			}

			provided := []byte(authHeader[len(bearerPrefix):])
			if len(provided) == 0 || subtle.ConstantTimeCompare(provided, want) != 1 {
				reject(w, r, logger, "token mismatch")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request, logger *zap.Logger, reason string) {
	logger.Warn("rejected request",
		zap.String("reason", reason),
		zap.String("remote_addr", r.RemoteAddr),
		zap.String("path", r.URL.Path),
	)
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}
