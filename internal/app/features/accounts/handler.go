// internal/app/features/accounts/handler.go
package accounts

import (
	cartstore "github.com/JayanshJR7/novara-api/internal/app/store/carts"
	tokenstore "github.com/JayanshJR7/novara-api/internal/app/store/tokens"
	userstore "github.com/JayanshJR7/novara-api/internal/app/store/users"
	"github.com/JayanshJR7/novara-api/internal/app/system/auth"
	"github.com/JayanshJR7/novara-api/internal/app/system/cartsession"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns account registration, login, logout and the Google OAuth
// flow. Successful sign-in merges the guest cart into the user's cart.
type Handler struct {
	Users    *userstore.Store
	Tokens   *tokenstore.Store
	Carts    *cartstore.Store
	TokenMgr *auth.TokenManager
	CartSess *cartsession.Manager
	Log      *zap.Logger

	// Google OAuth configuration. Empty ClientID disables the flow.
	GoogleClientID     string
	GoogleClientSecret string
	RedirectURL        string // BaseURL + "/api/auth/google/callback"
	StateCodec         *StateCodec
}

func NewHandler(db *mongo.Database, tm *auth.TokenManager, cs *cartsession.Manager,
	googleClientID, googleClientSecret, baseURL, sessionKey string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:              userstore.New(db),
		Tokens:             tokenstore.New(db),
		Carts:              cartstore.New(db),
		TokenMgr:           tm,
		CartSess:           cs,
		Log:                logger,
		GoogleClientID:     googleClientID,
		GoogleClientSecret: googleClientSecret,
		RedirectURL:        baseURL + "/api/auth/google/callback",
		StateCodec:         NewStateCodec(sessionKey),
	}
}

// IsGoogleConfigured returns true if the Google OAuth flow is usable.
func (h *Handler) IsGoogleConfigured() bool {
	return h.GoogleClientID != "" && h.GoogleClientSecret != ""
}
