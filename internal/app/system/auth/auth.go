package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	tokenstore "github.com/JayanshJR7/novara-api/internal/app/store/tokens"
	userstore "github.com/JayanshJR7/novara-api/internal/app/store/users"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what we resolve from a bearer token & inject into r.Context().
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a user into the request context. Test helper only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Token manager & middleware                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// TokenManager resolves Authorization bearer tokens against the tokens
// collection and loads fresh user data on each request, so role changes and
// deleted accounts take effect immediately.
type TokenManager struct {
	tokens *tokenstore.Store
	users  *userstore.Store
	ttl    time.Duration
	log    *zap.Logger
}

func NewTokenManager(db *mongo.Database, ttl time.Duration, logger *zap.Logger) *TokenManager {
	return &TokenManager{
		tokens: tokenstore.New(db),
		users:  userstore.New(db),
		ttl:    ttl,
		log:    logger,
	}
}

// Issue creates and persists a new bearer token for the user.
func (m *TokenManager) Issue(ctx context.Context, userID string) (string, error) {
	return m.tokens.Issue(ctx, userID, m.ttl)
}

// Revoke deletes the given token. Unknown tokens are a no-op.
func (m *TokenManager) Revoke(ctx context.Context, token string) error {
	return m.tokens.Revoke(ctx, token)
}

// LoadTokenUser injects the user into context if the request carries a valid
// bearer token. Requests without a token (or with a stale one) continue
// anonymously; the Require* middlewares decide whether that is acceptable.
func (m *TokenManager) LoadTokenUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerToken(r)
		if tok == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		rec, err := m.tokens.Lookup(ctx, tok)
		if err != nil {
			// Expired or unknown token: treat as anonymous, not as an error.
			next.ServeHTTP(w, r)
			return
		}

		u, err := m.users.GetByID(ctx, rec.UserID)
		if err != nil {
			m.log.Debug("token user lookup failed", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		r = withUser(r, &SessionUser{
			ID:    u.ID.Hex(),
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role,
		})
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadTokenUser).
// API callers get a plain 401 with the JSON error envelope.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		respond.Error(w, http.StatusUnauthorized, "authentication required")
	})
}

// RequireAdmin ensures the signed-in user has the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !strings.EqualFold(u.Role, models.RoleAdmin) {
			respond.Error(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
