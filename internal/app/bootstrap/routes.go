// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountsfeature "github.com/JayanshJR7/novara-api/internal/app/features/accounts"
	carouselfeature "github.com/JayanshJR7/novara-api/internal/app/features/carousel"
	cartfeature "github.com/JayanshJR7/novara-api/internal/app/features/cart"
	categoriesfeature "github.com/JayanshJR7/novara-api/internal/app/features/categories"
	checkoutfeature "github.com/JayanshJR7/novara-api/internal/app/features/checkout"
	couponsfeature "github.com/JayanshJR7/novara-api/internal/app/features/coupons"
	dashboardfeature "github.com/JayanshJR7/novara-api/internal/app/features/dashboard"
	healthfeature "github.com/JayanshJR7/novara-api/internal/app/features/health"
	ordersfeature "github.com/JayanshJR7/novara-api/internal/app/features/orders"
	productsfeature "github.com/JayanshJR7/novara-api/internal/app/features/products"
	reviewsfeature "github.com/JayanshJR7/novara-api/internal/app/features/reviews"
	wishlistfeature "github.com/JayanshJR7/novara-api/internal/app/features/wishlist"
	"github.com/JayanshJR7/novara-api/internal/app/system/auth"
	"github.com/JayanshJR7/novara-api/internal/app/system/cartsession"
	"github.com/JayanshJR7/novara-api/internal/gateway/razorpay"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The storefront API is mounted under
// /api; the back office under /api/admin.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.NovaraMongoDatabase

	// Guest cart cookie store. Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	cartSess, err := cartsession.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("cart session manager init failed", zap.Error(err))
		return nil, err
	}

	// Bearer token resolution for signed-in API clients. Fresh user data is
	// loaded per request so role changes and deleted accounts take effect
	// immediately.
	tokenMgr := auth.NewTokenManager(db, appCfg.TokenTTL, logger)

	gateway := razorpay.NewClient(appCfg.RazorpayKeyID, appCfg.RazorpayKeySecret, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads the token user into context if present.
	r.Use(tokenMgr.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.NovaraMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Accounts and sign-in
	accountsHandler := accountsfeature.NewHandler(db, tokenMgr, cartSess,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, appCfg.SessionKey, logger)
	r.Mount("/api/auth", accountsfeature.Routes(accountsHandler))

	// Storefront catalog
	productsHandler := productsfeature.NewHandler(db, logger)
	reviewsHandler := reviewsfeature.NewHandler(db, logger)
	r.Mount("/api/products", productsfeature.Routes(productsHandler, reviewsHandler))

	categoriesHandler := categoriesfeature.NewHandler(db, logger)
	r.Mount("/api/categories", categoriesfeature.Routes(categoriesHandler))

	carouselHandler := carouselfeature.NewHandler(db, logger)
	r.Mount("/api/carousel", carouselfeature.Routes(carouselHandler))

	// Cart and wishlist
	cartHandler := cartfeature.NewHandler(db, cartSess, logger)
	r.Mount("/api/cart", cartfeature.Routes(cartHandler))

	wishlistHandler := wishlistfeature.NewHandler(db, logger)
	r.Mount("/api/wishlist", wishlistfeature.Routes(wishlistHandler))

	// Coupons
	couponsHandler := couponsfeature.NewHandler(db, logger)
	r.Mount("/api/coupons", couponsfeature.Routes(couponsHandler))

	// Checkout and payment reconciliation
	checkoutHandler := checkoutfeature.NewHandler(db, gateway, appCfg.RazorpayKeySecret, logger)
	r.Mount("/api/payment", checkoutfeature.PaymentRoutes(checkoutHandler))

	ordersHandler := ordersfeature.NewHandler(db, logger)
	r.Mount("/api/orders", ordersfeature.Routes(ordersHandler, checkoutHandler))

	// Back office
	dashboardHandler := dashboardfeature.NewHandler(db, logger)
	r.Mount("/api/admin/dashboard", dashboardfeature.Routes(dashboardHandler))
	r.Mount("/api/admin/products", productsfeature.AdminRoutes(productsHandler))
	r.Mount("/api/admin/categories", categoriesfeature.AdminRoutes(categoriesHandler))
	r.Mount("/api/admin/coupons", couponsfeature.AdminRoutes(couponsHandler))
	r.Mount("/api/admin/orders", ordersfeature.AdminRoutes(ordersHandler))
	r.Mount("/api/admin/reviews", reviewsfeature.AdminRoutes(reviewsHandler))
	r.Mount("/api/admin/carousel", carouselfeature.AdminRoutes(carouselHandler))

	logger.Info("router built",
		zap.String("env", coreCfg.Env),
		zap.Bool("google_oauth", accountsHandler.IsGoogleConfigured()))

	return r, nil
}
