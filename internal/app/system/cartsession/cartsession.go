// Package cartsession manages the signed cookie that identifies a guest's
// cart. Signed-in users are keyed by user id instead; the cookie only
// matters before login.
package cartsession

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	cartIDKey = "cart_id"
)

// Manager wraps the gorilla cookie store for the guest cart id.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewManager initializes the cookie store using the provided session key and
// domain. The `secure` flag controls whether cookies are marked Secure and
// which SameSite mode is used.
//
// In production (secure=true), cookies should be Secure + SameSite=None
// (for cross-site use with HTTPS).
// In local dev over http://localhost, use secure=false so cookies are accepted.
func NewManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*Manager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 30, // guest carts live 30 days
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("cart session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &Manager{store: store, name: name, log: logger}, nil
}

// CartID returns the guest cart id from the request cookie, minting and
// setting a new one when absent. The returned id is stable across requests
// for the same browser.
func (m *Manager) CartID(w http.ResponseWriter, r *http.Request) string {
	sess, _ := m.store.Get(r, m.name)
	if id, ok := sess.Values[cartIDKey].(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	sess.Values[cartIDKey] = id
	if err := sess.Save(r, w); err != nil {
		m.log.Warn("cart cookie save failed", zap.Error(err))
	}
	return id
}

// Peek returns the guest cart id if the cookie already carries one, without
// minting a new id.
func (m *Manager) Peek(r *http.Request) (string, bool) {
	sess, _ := m.store.Get(r, m.name)
	id, ok := sess.Values[cartIDKey].(string)
	return id, ok && id != ""
}
