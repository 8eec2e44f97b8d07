package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/JayanshJR7/novara-api/internal/domain/models"
)

func order(status string, total float64) models.Order {
	return models.Order{Status: status, TotalAmount: total}
}

func TestComputeStatsRevenue(t *testing.T) {
	orders := []models.Order{
		order(models.OrderPending, 1000), // not yet paid, excluded
		order(models.OrderConfirmed, 2500),
		order(models.OrderProcessing, 1500),
		order(models.OrderShipped, 3000),
		order(models.OrderDelivered, 500),
		order(models.OrderCancelled, 9999), // excluded
	}

	st := ComputeStats(orders, nil, nil, nil)

	if st.TotalOrders != 6 {
		t.Errorf("TotalOrders = %d, want 6", st.TotalOrders)
	}
	if st.PendingOrders != 1 {
		t.Errorf("PendingOrders = %d, want 1", st.PendingOrders)
	}
	if st.TotalRevenue != 7500 {
		t.Errorf("TotalRevenue = %v, want 7500", st.TotalRevenue)
	}
	if st.OrdersByStatus[models.OrderPending] != 1 {
		t.Errorf("OrdersByStatus[pending] = %d, want 1", st.OrdersByStatus[models.OrderPending])
	}
	if st.OrdersByStatus[models.OrderCancelled] != 1 {
		t.Errorf("OrdersByStatus[cancelled] = %d, want 1", st.OrdersByStatus[models.OrderCancelled])
	}
}

func TestComputeStatsCouponsAndReviews(t *testing.T) {
	coupons := []models.Coupon{
		{Code: "LIVE", Active: true},
		{Code: "OLD", Active: false},
		{Code: "LIVE2", Active: true},
	}
	reviews := []models.Review{
		{Approved: true},
		{Approved: false},
		{Approved: false},
	}

	st := ComputeStats(nil, nil, coupons, reviews)

	if st.ActiveCoupons != 2 {
		t.Errorf("ActiveCoupons = %d, want 2", st.ActiveCoupons)
	}
	if st.PendingReviews != 2 {
		t.Errorf("PendingReviews = %d, want 2", st.PendingReviews)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	st := ComputeStats(nil, nil, nil, nil)
	if st.TotalOrders != 0 || st.TotalRevenue != 0 || st.TotalProducts != 0 {
		t.Errorf("ComputeStats of nothing = %+v, want zeroes", st)
	}
}

func TestLowStockProducts(t *testing.T) {
	products := []models.Product{
		{Name: "Ring", Stock: 2, Active: true},
		{Name: "Chain", Stock: 50, Active: true},
		{Name: "Pendant", Stock: 0, Active: true},
		{Name: "Retired", Stock: 1, Active: false}, // inactive, excluded
		{Name: "Bangle", Stock: LowStockThreshold, Active: true},
	}

	low := LowStockProducts(products)

	if len(low) != 3 {
		t.Fatalf("len = %d, want 3", len(low))
	}
	// Lowest stock first.
	if low[0].Name != "Pendant" || low[1].Name != "Ring" || low[2].Name != "Bangle" {
		t.Errorf("order = %s, %s, %s", low[0].Name, low[1].Name, low[2].Name)
	}
}

func TestFetchDashboardAllSettled(t *testing.T) {
	boom := errors.New("orders collection unavailable")

	src := Sources{
		Products: func(context.Context) ([]models.Product, error) {
			return []models.Product{{Name: "Ring", Stock: 1, Active: true}}, nil
		},
		Orders: func(context.Context) ([]models.Order, error) {
			return nil, boom
		},
		Coupons: func(context.Context) ([]models.Coupon, error) {
			return []models.Coupon{{Code: "LIVE", Active: true}}, nil
		},
		Categories: func(context.Context) ([]models.Category, error) {
			return []models.Category{{Name: "Rings"}}, nil
		},
		Reviews: func(context.Context) ([]models.Review, error) {
			return []models.Review{{Approved: false}}, nil
		},
	}

	dash, err := FetchDashboard(context.Background(), src)

	// The failing source is reported but does not wipe out the others.
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
	if dash.Stats.TotalOrders != 0 || dash.Stats.TotalRevenue != 0 {
		t.Errorf("order stats = %+v, want zeroes for the failed source", dash.Stats)
	}
	if dash.Stats.TotalProducts != 1 {
		t.Errorf("TotalProducts = %d, want 1", dash.Stats.TotalProducts)
	}
	if dash.Stats.ActiveCoupons != 1 {
		t.Errorf("ActiveCoupons = %d, want 1", dash.Stats.ActiveCoupons)
	}
	if dash.Stats.PendingReviews != 1 {
		t.Errorf("PendingReviews = %d, want 1", dash.Stats.PendingReviews)
	}
	if len(dash.Categories) != 1 {
		t.Errorf("Categories len = %d, want 1", len(dash.Categories))
	}
	if len(dash.LowStock) != 1 {
		t.Errorf("LowStock len = %d, want 1", len(dash.LowStock))
	}
}

func TestFetchDashboardRecentOrdersCapped(t *testing.T) {
	var many []models.Order
	for i := 0; i < RecentOrderCount+5; i++ {
		many = append(many, order(models.OrderConfirmed, 100))
	}

	src := Sources{
		Products:   func(context.Context) ([]models.Product, error) { return nil, nil },
		Orders:     func(context.Context) ([]models.Order, error) { return many, nil },
		Coupons:    func(context.Context) ([]models.Coupon, error) { return nil, nil },
		Categories: func(context.Context) ([]models.Category, error) { return nil, nil },
		Reviews:    func(context.Context) ([]models.Review, error) { return nil, nil },
	}

	dash, err := FetchDashboard(context.Background(), src)
	if err != nil {
		t.Fatalf("FetchDashboard() error = %v", err)
	}
	if len(dash.RecentOrders) != RecentOrderCount {
		t.Errorf("RecentOrders len = %d, want %d", len(dash.RecentOrders), RecentOrderCount)
	}
	if dash.Stats.TotalOrders != RecentOrderCount+5 {
		t.Errorf("TotalOrders = %d, want %d", dash.Stats.TotalOrders, RecentOrderCount+5)
	}
}
