package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/shopkartlabs/shopkart-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

type sessionCtxKey struct{}

// Session reads the storefront session id from the request header, minting a
// fresh one for first-time visitors. The id is always echoed back so the
// client can persist it.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionIDHeader)
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(sessionIDHeader, sessionID)

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFromContext returns the session id placed by Session, or "".
func SessionIDFromContext(ctx context.Context) string {
	if sessionID, ok := ctx.Value(sessionCtxKey{}).(string); ok {
		return sessionID
	}
	return ""
}
