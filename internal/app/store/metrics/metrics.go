// internal/app/store/metrics/metrics.go
//
// Back-office dashboard aggregation. The five resource fetches run
// concurrently and the page renders with whatever succeeded; a slow or
// failing source degrades its own card, not the whole dashboard.
package metrics

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/JayanshJR7/novara-api/internal/domain/pricing"
)

// LowStockThreshold flags products needing a restock on the dashboard.
const LowStockThreshold = 5

// RecentOrderCount caps the dashboard's recent-orders card.
const RecentOrderCount = 10

// Stats is the computed summary block of the dashboard.
type Stats struct {
	TotalProducts  int            `json:"total_products"`
	TotalOrders    int            `json:"total_orders"`
	PendingOrders  int            `json:"pending_orders"`
	TotalRevenue   float64        `json:"total_revenue"`
	ActiveCoupons  int            `json:"active_coupons"`
	PendingReviews int            `json:"pending_reviews"`
	OrdersByStatus map[string]int `json:"orders_by_status"`
}

// Dashboard is the full aggregate the admin home page renders: the five
// managed collections plus derived summaries.
type Dashboard struct {
	Stats        Stats
	Products     []models.Product
	Orders       []models.Order
	Coupons      []models.Coupon
	Categories   []models.Category
	Reviews      []models.Review
	RecentOrders []models.Order
	LowStock     []models.Product
}

// Sources supplies the five data feeds. Function fields rather than store
// types so tests can substitute fixtures without a database.
type Sources struct {
	Products   func(ctx context.Context) ([]models.Product, error)
	Orders     func(ctx context.Context) ([]models.Order, error)
	Coupons    func(ctx context.Context) ([]models.Coupon, error)
	Categories func(ctx context.Context) ([]models.Category, error)
	Reviews    func(ctx context.Context) ([]models.Review, error)
}

// revenueStatuses are the order states that count toward revenue: the
// order is paid and has not been cancelled.
var revenueStatuses = map[string]bool{
	models.OrderConfirmed:  true,
	models.OrderProcessing: true,
	models.OrderShipped:    true,
	models.OrderDelivered:  true,
}

// ComputeStats derives the summary numbers from the raw collections.
func ComputeStats(orders []models.Order, products []models.Product, coupons []models.Coupon, reviews []models.Review) Stats {
	st := Stats{
		TotalProducts:  len(products),
		TotalOrders:    len(orders),
		OrdersByStatus: map[string]int{},
	}
	for _, o := range orders {
		st.OrdersByStatus[o.Status]++
		if o.Status == models.OrderPending {
			st.PendingOrders++
		}
		if revenueStatuses[o.Status] {
			st.TotalRevenue += o.TotalAmount
		}
	}
	for _, c := range coupons {
		if c.Active {
			st.ActiveCoupons++
		}
	}
	for _, rv := range reviews {
		if !rv.Approved {
			st.PendingReviews++
		}
	}
	st.TotalRevenue = pricing.Round2(st.TotalRevenue)
	return st
}

// LowStockProducts returns active products at or below the threshold,
// lowest stock first.
func LowStockProducts(products []models.Product) []models.Product {
	var low []models.Product
	for _, p := range products {
		if p.Active && p.Stock <= LowStockThreshold {
			low = append(low, p)
		}
	}
	sort.Slice(low, func(i, j int) bool { return low[i].Stock < low[j].Stock })
	return low
}

// FetchDashboard runs every source concurrently and waits for all of them.
// A failed source contributes an empty collection; its error is joined into
// the returned error so callers can log what degraded.
func FetchDashboard(ctx context.Context, src Sources) (Dashboard, error) {
	var (
		wg sync.WaitGroup

		products   []models.Product
		orders     []models.Order
		coupons    []models.Coupon
		categories []models.Category
		reviews    []models.Review

		errProducts, errOrders, errCoupons, errCategories, errReviews error
	)

	wg.Add(5)
	go func() { defer wg.Done(); products, errProducts = src.Products(ctx) }()
	go func() { defer wg.Done(); orders, errOrders = src.Orders(ctx) }()
	go func() { defer wg.Done(); coupons, errCoupons = src.Coupons(ctx) }()
	go func() { defer wg.Done(); categories, errCategories = src.Categories(ctx) }()
	go func() { defer wg.Done(); reviews, errReviews = src.Reviews(ctx) }()
	wg.Wait()

	recent := orders
	if len(recent) > RecentOrderCount {
		recent = recent[:RecentOrderCount]
	}

	return Dashboard{
		Stats:        ComputeStats(orders, products, coupons, reviews),
		Products:     products,
		Orders:       orders,
		Coupons:      coupons,
		Categories:   categories,
		Reviews:      reviews,
		RecentOrders: recent,
		LowStock:     LowStockProducts(products),
	}, errors.Join(errProducts, errOrders, errCoupons, errCategories, errReviews)
}
