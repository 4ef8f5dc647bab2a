package middlewares

import (
	"net/http"

	"github.com/go-chi/oauth"

	"github.com/freelyform/freelyform/model"
)

// Authenticated rejects requests without a valid bearer token.
func Authenticated(secret string) func(http.Handler) http.Handler {
	return oauth.Authorize(secret, nil)
}

// MaybeAuthenticated validates a bearer token when one is supplied and
// lets anonymous requests straight through. Public submission uses it:
// a logged-in user submits under their identity, everyone else as
// guest.
func MaybeAuthenticated(secret string) func(http.Handler) http.Handler {
	authorize := oauth.Authorize(secret, nil)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			authorize(next).ServeHTTP(w, r)
		})
	}
}

// UserID extracts the authenticated user's id from the token claims,
// or the guest sentinel when the request carries no identity.
func UserID(r *http.Request) string {
	claims, ok := r.Context().Value(oauth.ClaimsContext).(map[string]string)
	if !ok {
		return model.GuestUserID
	}
	id := claims["user_id"]
	if id == "" {
		return model.GuestUserID
	}
	return id
}
