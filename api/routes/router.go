package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/barbarashop/storefront-backend/api/controllers"
	"github.com/barbarashop/storefront-backend/api/middleware"
	"github.com/barbarashop/storefront-backend/internal/auth"
	"github.com/barbarashop/storefront-backend/internal/categories"
	"github.com/barbarashop/storefront-backend/internal/products"
	"github.com/barbarashop/storefront-backend/pkg/auth/session"
	"github.com/barbarashop/storefront-backend/pkg/config"
	"github.com/barbarashop/storefront-backend/pkg/db"
	"github.com/barbarashop/storefront-backend/pkg/logger"
	"github.com/barbarashop/storefront-backend/pkg/metrics"
	"github.com/barbarashop/storefront-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs. Catalog reads stay public;
// catalog writes sit behind the session-backed bearer check.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           redis.Pinger
	SessionChecker  session.Checker
	AuthService     auth.Service
	ProductService  products.Service
	CategoryService categories.Service
	HTTPMetrics     *metrics.HTTPMetrics
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(
		prometheus.DefaultGatherer,
		promhttp.HandlerOpts{},
	))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.Get("/verify", controllers.AuthVerify(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(deps.ProductService, logg))
		r.Get("/{productID}", controllers.GetProduct(deps.ProductService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
			r.Post("/", controllers.CreateProduct(deps.ProductService, logg))
			r.Put("/{productID}", controllers.UpdateProduct(deps.ProductService, logg))
			r.Delete("/{productID}", controllers.DeleteProduct(deps.ProductService, logg))
		})
	})

	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Get("/", controllers.ListCategories(deps.CategoryService, logg))
		r.Get("/{categoryID}", controllers.GetCategory(deps.CategoryService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
			r.Post("/", controllers.CreateCategory(deps.CategoryService, logg))
			r.Put("/{categoryID}", controllers.UpdateCategory(deps.CategoryService, logg))
			r.Delete("/{categoryID}", controllers.DeleteCategory(deps.CategoryService, logg))
		})
	})

	return r
}
