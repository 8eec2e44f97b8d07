// internal/app/features/cart/handler.go
package cart

import (
	"context"
	"net/http"

	cartstore "github.com/JayanshJR7/novara-api/internal/app/store/carts"
	productstore "github.com/JayanshJR7/novara-api/internal/app/store/products"
	"github.com/JayanshJR7/novara-api/internal/app/system/auth"
	"github.com/JayanshJR7/novara-api/internal/app/system/cartsession"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/JayanshJR7/novara-api/internal/domain/pricing"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the cart endpoints. Carts work for both guests (session
// cookie) and signed-in users (bearer token); totals are always recomputed
// from the live catalog.
type Handler struct {
	Carts    *cartstore.Store
	Products *productstore.Store
	CartSess *cartsession.Manager
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, cs *cartsession.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Carts:    cartstore.New(db),
		Products: productstore.New(db),
		CartSess: cs,
		Log:      logger,
	}
}

// owner resolves who the cart belongs to. Signed-in users win; guests get
// a session cookie minted on first touch.
func (h *Handler) owner(w http.ResponseWriter, r *http.Request) (cartstore.Owner, bool) {
	if u, ok := auth.CurrentUser(r); ok {
		uid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "invalid session")
			return cartstore.Owner{}, false
		}
		return cartstore.Owner{UserID: &uid}, true
	}
	return cartstore.Owner{SessionID: h.CartSess.CartID(w, r)}, true
}

/*─────────────────────────────────────────────────────────────────────────────*
| Cart pricing view                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

type cartLineJSON struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
	ImageURL  string  `json:"image_url,omitempty"`
	InStock   bool    `json:"in_stock"`
}

type cartJSON struct {
	Items          []cartLineJSON `json:"items"`
	Subtotal       float64        `json:"subtotal"`
	DeliveryCharge float64        `json:"delivery_charge"`
	Total          float64        `json:"total"`
}

// priceCart joins cart lines against the live catalog. Lines whose product
// has been deleted or hidden are shown out of stock with a zero price
// contribution rather than silently dropped.
func (h *Handler) priceCart(ctx context.Context, c models.Cart) (cartJSON, error) {
	ids := make([]primitive.ObjectID, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}

	prods, err := h.Products.GetByIDs(ctx, ids)
	if err != nil {
		return cartJSON{}, err
	}
	byID := make(map[primitive.ObjectID]models.Product, len(prods))
	for _, p := range prods {
		byID[p.ID] = p
	}

	out := cartJSON{Items: []cartLineJSON{}}
	for _, it := range c.Items {
		p, found := byID[it.ProductID]
		line := cartLineJSON{
			ProductID: it.ProductID.Hex(),
			Quantity:  it.Quantity,
		}
		if found {
			line.Name = p.Name
			line.InStock = p.InStock()
			if len(p.Images) > 0 {
				line.ImageURL = p.Images[0]
			}
			if p.InStock() {
				line.Price = p.Price
				line.LineTotal = pricing.Round2(p.Price * float64(it.Quantity))
				out.Subtotal += line.LineTotal
			}
		}
		out.Items = append(out.Items, line)
	}

	out.Subtotal = pricing.Round2(out.Subtotal)
	out.DeliveryCharge = pricing.DeliveryCharge(out.Subtotal)
	out.Total = pricing.FinalTotal(out.Subtotal, 0)
	return out, nil
}
