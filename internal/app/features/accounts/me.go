// internal/app/features/accounts/me.go
package accounts

import (
	"net/http"

	"github.com/JayanshJR7/novara-api/internal/app/system/auth"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/auth/me                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	respond.JSON(w, http.StatusOK, userInfo{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	})
}
