// internal/app/features/accounts/logout.go
package accounts

import (
	"context"
	"net/http"
	"strings"

	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/auth/logout                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	tok := bearerToken(r)
	if tok == "" {
		// Nothing to revoke; logout is idempotent.
		respond.JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.TokenMgr.Revoke(ctx, tok); err != nil {
		h.Log.Warn("token revoke failed", zap.Error(err))
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
