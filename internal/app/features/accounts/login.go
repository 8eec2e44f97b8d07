// internal/app/features/accounts/login.go
package accounts

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/JayanshJR7/novara-api/internal/app/store/users"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/auth/login                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userstore.ErrInvalidCredentials) {
			respond.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.Log.Error("login failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not sign in")
		return
	}

	token, err := h.TokenMgr.Issue(ctx, u.ID.Hex())
	if err != nil {
		h.Log.Error("token issue failed", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not create session")
		return
	}

	h.mergeGuestCart(ctx, r, u.ID)

	h.Log.Info("user logged in", zap.String("user_id", u.ID.Hex()))
	respond.JSON(w, http.StatusOK, authResponse{Token: token, User: toUserInfo(u)})
}

// mergeGuestCart folds the guest-session cart into the user's cart at
// sign-in. Failure is logged, never surfaced; losing a guest cart is not
// worth failing a login over.
func (h *Handler) mergeGuestCart(ctx context.Context, r *http.Request, userID primitive.ObjectID) {
	sessionID, ok := h.CartSess.Peek(r)
	if !ok {
		return
	}
	if err := h.Carts.MergeGuest(ctx, sessionID, userID); err != nil {
		h.Log.Warn("guest cart merge failed",
			zap.String("user_id", userID.Hex()),
			zap.Error(err))
	}
}
