package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/couchcryptid/impact-sim-service/internal/auth"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

type claimsKey struct{}

// requireSession rejects requests without a valid "Authorization: Bearer"
// session token and stores the token's claims in the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := s.deps.Tokens.Validate(token)
		if err != nil {
			s.logger.Debug("session token rejected", "error", err)
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			writeError(w, http.StatusUnauthorized, "invalid session token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

func claimsFrom(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return c
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r.Context())
	resp := map[string]any{"user_id": c.UserID, "email": c.Email}
	if c.ExpiresAt != nil {
		resp["expires_at"] = c.ExpiresAt.Time
	}
	sharedobs.WriteJSON(w, http.StatusOK, resp)
}
