package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mobimart/storefront/internal/session"
)

// SessionHeader carries the opaque session token issued at login.
const SessionHeader = "X-Session-Token"

type ctxKey struct{}

// SessionAuth resolves the caller's session from the session token header.
// Requests without a token proceed as an anonymous session; a token that no
// longer resolves is rejected so the client can re-authenticate.
func SessionAuth(store *session.Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(SessionHeader)

			var sess *session.Session
			if token == "" {
				sess = store.Anonymous()
			} else {
				var ok bool
				sess, ok = store.Get(token)
				if !ok {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					_ = json.NewEncoder(w).Encode(map[string]string{"error": "Session expired or unknown"})
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom returns the session resolved for this request. It is always
// present below SessionAuth; the bool guards misuse outside that chain.
func SessionFrom(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*session.Session)
	return s, ok
}
