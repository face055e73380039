// Package operator gates the registry's mutating endpoints behind the
// designated privileged operator. The gate is pure middleware: registry
// validation logic never sees it, and the service assumes it already ran.
package operator

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"waybill/pkg/requestcontext"
)

// Gate authenticates the privileged operator. Exactly one mode is active:
// a bcrypt token hash takes precedence, then a plain static token
// (constant-time compared), then HS256 JWT verification.
type Gate struct {
	tokenHash string
	token     string
	jwtKey    []byte
	logger    *slog.Logger
}

func NewGate(tokenHash, token, jwtKey string, logger *slog.Logger) *Gate {
	return &Gate{
		tokenHash: tokenHash,
		token:     token,
		jwtKey:    []byte(jwtKey),
		logger:    logger,
	}
}

// Require wraps mutating routes, rejecting requests that do not present a
// valid operator credential.
func (g *Gate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.authorized(r) {
			ctx := r.Context()
			g.logger.WarnContext(ctx, "operator credential rejected",
				"request_id", requestcontext.RequestID(ctx),
				"remote_ip", requestcontext.ClientIP(ctx),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"operator credential required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *Gate) authorized(r *http.Request) bool {
	switch {
	case g.tokenHash != "":
		token := r.Header.Get("X-Operator-Token")
		return token != "" && VerifyToken(token, g.tokenHash) == nil
	case g.token != "":
		token := r.Header.Get("X-Operator-Token")
		return subtle.ConstantTimeCompare([]byte(token), []byte(g.token)) == 1
	case len(g.jwtKey) > 0:
		bearer := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(bearer, "Bearer ")
		return ok && VerifyJWT(g.jwtKey, token) == nil
	}
	return false
}
