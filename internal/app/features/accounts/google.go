// internal/app/features/accounts/google.go
package accounts

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const stateCookieName = "novara_oauth_state"

// StateCodec signs the OAuth state into a short-lived cookie so the
// callback can verify the flow started here, without a server-side store.
type StateCodec struct {
	sc *securecookie.SecureCookie
}

func NewStateCodec(sessionKey string) *StateCodec {
	sc := securecookie.New([]byte(sessionKey), nil)
	sc.MaxAge(600) // states are single-use and short-lived
	return &StateCodec{sc: sc}
}

func (c *StateCodec) Set(w http.ResponseWriter, state string) error {
	encoded, err := c.sc.Encode(stateCookieName, state)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (c *StateCodec) Verify(r *http.Request, state string) bool {
	cookie, err := r.Cookie(stateCookieName)
	if err != nil {
		return false
	}
	var stored string
	if err := c.sc.Decode(stateCookieName, cookie.Value, &stored); err != nil {
		return false
	}
	return stored != "" && stored == state
}

func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.GoogleClientID,
		ClientSecret: h.GoogleClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/auth/google                                                         |
| Initiates the Google OAuth flow by redirecting to Google's consent screen.   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsGoogleConfigured() {
		h.Log.Warn("Google OAuth not configured")
		respond.Error(w, http.StatusServiceUnavailable, "google sign-in is not available")
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not start sign-in")
		return
	}
	if err := h.StateCodec.Set(w, state); err != nil {
		h.Log.Error("failed to set OAuth state cookie", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not start sign-in")
		return
	}

	url := h.oauth2Config().AuthCodeURL(state)
	h.Log.Debug("initiating Google OAuth flow", zap.String("redirect_url", url))
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/auth/google/callback                                                |
| Exchanges the code, fetches the Google profile, links or creates the local   |
| account and issues a bearer token.                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeGoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		respond.Error(w, http.StatusUnauthorized, "google sign-in was denied")
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" || !h.StateCodec.Verify(r, state) {
		h.Log.Warn("invalid or missing OAuth state")
		respond.Error(w, http.StatusUnauthorized, "sign-in session is invalid or expired")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respond.Error(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		respond.Error(w, http.StatusUnauthorized, "could not verify google sign-in")
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		respond.Error(w, http.StatusBadGateway, "could not fetch google profile")
		return
	}
	if googleUser.Email == "" {
		respond.Error(w, http.StatusBadRequest, "google account has no email")
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	u, err := h.Users.UpsertGoogle(dbCtx, googleUser.ID, googleUser.Email, googleUser.Name)
	if err != nil {
		h.Log.Error("google account upsert failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not sign in")
		return
	}

	bearer, err := h.TokenMgr.Issue(dbCtx, u.ID.Hex())
	if err != nil {
		h.Log.Error("token issue failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not create session")
		return
	}

	h.mergeGuestCart(dbCtx, r, u.ID)

	h.Log.Info("user logged in via Google OAuth", zap.String("user_id", u.ID.Hex()))
	respond.JSON(w, http.StatusOK, authResponse{Token: bearer, User: toUserInfo(u)})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
