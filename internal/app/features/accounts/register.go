// internal/app/features/accounts/register.go
package accounts

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/JayanshJR7/novara-api/internal/app/store/users"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const minPasswordLen = 8

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/auth/register                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.Name == "":
		respond.Error(w, http.StatusBadRequest, "name is required")
		return
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		respond.Error(w, http.StatusBadRequest, "a valid email is required")
		return
	case len(req.Password) < minPasswordLen:
		respond.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Create(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			respond.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.Log.Error("register failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not create account")
		return
	}

	token, err := h.TokenMgr.Issue(ctx, u.ID.Hex())
	if err != nil {
		h.Log.Error("token issue failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not create session")
		return
	}

	h.mergeGuestCart(ctx, r, u.ID)

	h.Log.Info("account registered", zap.String("user_id", u.ID.Hex()))
	respond.JSON(w, http.StatusCreated, authResponse{Token: token, User: toUserInfo(u)})
}
