package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/kabak/internal/api/apierr"
	"github.com/mcoot/kabak/internal/model"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Headers set by the trusted chat gateway
const (
	HeaderPlayerID   = "X-Player-ID"
	HeaderPlayerName = "X-Player-Name"
)

// Identity is the caller as asserted by the chat gateway
type Identity struct {
	ID   model.PlayerID
	Name string
	// Admin is set once the admin id has been verified
	Admin bool
}

// RequireIdentity rejects requests that carry no player id
func RequireIdentity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(HeaderPlayerID))
			if id == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ident := &Identity{
				ID:   model.PlayerID(id),
				Name: strings.TrimSpace(r.Header.Get(HeaderPlayerName)),
			}
			ctx := context.WithValue(r.Context(), identityContextKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminIdentity verifies callers claiming the admin id. With a non-empty
// tokenHash (a bcrypt hash) the admin id is only accepted together with a
// matching bearer token; otherwise the request is rejected, so the admin
// views behind every route are guarded the same way. An empty hash
// disables the check and the admin id alone authorises.
// Must run after RequireIdentity.
func AdminIdentity(isAdmin func(model.PlayerID) bool, tokenHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := MustGetIdentity(r.Context())
			if !isAdmin(ident.ID) {
				next.ServeHTTP(w, r)
				return
			}
			if tokenHash != "" && !validToken(tokenHash, extractToken(r)) {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			verified := *ident
			verified.Admin = true
			ctx := context.WithValue(r.Context(), identityContextKey, &verified)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validToken(tokenHash, token string) bool {
	if token == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)) == nil
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetIdentity returns the caller identity from the request context
func GetIdentity(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityContextKey).(*Identity)
	return ident
}

// MustGetIdentity returns the caller identity or panics
func MustGetIdentity(ctx context.Context) *Identity {
	ident := GetIdentity(ctx)
	if ident == nil {
		panic("no identity in context - identity middleware not applied?")
	}
	return ident
}
