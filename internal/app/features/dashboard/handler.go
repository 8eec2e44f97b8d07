// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"
	"time"

	categorystore "github.com/JayanshJR7/novara-api/internal/app/store/categories"
	couponstore "github.com/JayanshJR7/novara-api/internal/app/store/coupons"
	"github.com/JayanshJR7/novara-api/internal/app/store/metrics"
	orderstore "github.com/JayanshJR7/novara-api/internal/app/store/orders"
	productstore "github.com/JayanshJR7/novara-api/internal/app/store/products"
	reviewstore "github.com/JayanshJR7/novara-api/internal/app/store/reviews"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the back-office dashboard aggregate.
type Handler struct {
	Orders     *orderstore.Store
	Products   *productstore.Store
	Coupons    *couponstore.Store
	Categories *categorystore.Store
	Reviews    *reviewstore.Store
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Orders:     orderstore.New(db),
		Products:   productstore.New(db),
		Coupons:    couponstore.New(db),
		Categories: categorystore.New(db),
		Reviews:    reviewstore.New(db),
		Log:        logger,
	}
}

type recentOrderJSON struct {
	ID            string  `json:"id"`
	CustomerName  string  `json:"customer_name"`
	TotalAmount   float64 `json:"total_amount"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	CreatedAt     string  `json:"created_at"`
}

type lowStockJSON struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type dashboardJSON struct {
	Stats        metrics.Stats     `json:"stats"`
	RecentOrders []recentOrderJSON `json:"recent_orders"`
	LowStock     []lowStockJSON    `json:"low_stock"`
}

func toDashboardJSON(d metrics.Dashboard) dashboardJSON {
	out := dashboardJSON{
		Stats:        d.Stats,
		RecentOrders: make([]recentOrderJSON, 0, len(d.RecentOrders)),
		LowStock:     make([]lowStockJSON, 0, len(d.LowStock)),
	}
	for _, o := range d.RecentOrders {
		out.RecentOrders = append(out.RecentOrders, recentOrderJSON{
			ID:            o.ID.Hex(),
			CustomerName:  o.CustomerName,
			TotalAmount:   o.TotalAmount,
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		})
	}
	for _, p := range d.LowStock {
		out.LowStock = append(out.LowStock, lowStockJSON{
			ID:    p.ID.Hex(),
			Name:  p.Name,
			Price: p.Price,
			Stock: p.Stock,
		})
	}
	return out
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/admin/dashboard                                                     |
| The five collections are fetched concurrently; a failing source degrades     |
| its card to zeroes rather than failing the page.                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	dash, err := metrics.FetchDashboard(ctx, metrics.Sources{
		Products: h.Products.All,
		Orders: func(ctx context.Context) ([]models.Order, error) {
			return h.Orders.ListAll(ctx, "")
		},
		Coupons: h.Coupons.All,
		Categories: func(ctx context.Context) ([]models.Category, error) {
			return h.Categories.All(ctx, false)
		},
		Reviews: h.Reviews.ListPending,
	})
	if err != nil {
		// Partial data is better than no dashboard; log what degraded.
		h.Log.Warn("dashboard sources degraded", zap.Error(err))
	}

	respond.JSON(w, http.StatusOK, toDashboardJSON(dash))
}
