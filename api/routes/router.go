package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopkartlabs/shopkart-backend/api/controllers"
	"github.com/shopkartlabs/shopkart-backend/api/middleware"
	blogsvc "github.com/shopkartlabs/shopkart-backend/internal/blog"
	cartsvc "github.com/shopkartlabs/shopkart-backend/internal/cart"
	checkoutsvc "github.com/shopkartlabs/shopkart-backend/internal/checkout"
	comparesvc "github.com/shopkartlabs/shopkart-backend/internal/comparison"
	inquirysvc "github.com/shopkartlabs/shopkart-backend/internal/inquiries"
	ordersvc "github.com/shopkartlabs/shopkart-backend/internal/orders"
	"github.com/shopkartlabs/shopkart-backend/internal/products"
	reviewsvc "github.com/shopkartlabs/shopkart-backend/internal/reviews"
	"github.com/shopkartlabs/shopkart-backend/pkg/config"
	"github.com/shopkartlabs/shopkart-backend/pkg/db"
	"github.com/shopkartlabs/shopkart-backend/pkg/logger"
	"github.com/shopkartlabs/shopkart-backend/pkg/metrics"
	"github.com/shopkartlabs/shopkart-backend/pkg/redis"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           db.Pinger
	Redis        *redis.Client
	Registry     *prometheus.Registry
	HTTPMetrics  *metrics.HTTPMetrics
	Products     products.Service
	Cart         cartsvc.Service
	Checkout     checkoutsvc.Service
	Reviews      reviewsvc.Service
	Comparison   comparesvc.Service
	Orders       ordersvc.Service
	Inquiries    inquirysvc.Service
	Blog         blogsvc.Service
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Products, logg))
			r.Get("/{slug}", controllers.ProductDetail(deps.Products, logg))
			r.Get("/{productId}/reviews", controllers.ProductReviews(deps.Reviews, logg))
		})

		r.Get("/compare", controllers.Compare(deps.Comparison, logg))

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", controllers.ReviewCreate(deps.Reviews, logg))
			r.Post("/{reviewId}/helpful", controllers.ReviewMarkHelpful(deps.Reviews, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart, logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.Cart, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
			})
			r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/{orderNumber}", controllers.OrderDetail(deps.Orders, logg))
			r.Post("/{orderNumber}/cancel", controllers.OrderCancel(deps.Orders, logg))
		})

		r.Post("/inquiries", controllers.InquiryCreate(deps.Inquiries, logg))

		r.Route("/blog", func(r chi.Router) {
			r.Get("/", controllers.BlogList(deps.Blog, logg))
			r.Get("/{slug}", controllers.BlogDetail(deps.Blog, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminProductCreate(deps.Products, logg))
			r.Put("/{productId}", controllers.AdminProductUpdate(deps.Products, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(deps.Products, logg))
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(deps.Orders, logg))
			r.Get("/stats", controllers.AdminOrderStats(deps.Orders, logg))
			r.Post("/{orderNumber}/status", controllers.AdminOrderUpdateStatus(deps.Orders, logg))
		})
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/pending", controllers.AdminReviewsPending(deps.Reviews, logg))
			r.Post("/{reviewId}/approve", controllers.AdminReviewApprove(deps.Reviews, logg))
			r.Post("/{reviewId}/feature", controllers.AdminReviewFeature(deps.Reviews, logg))
		})
		r.Route("/inquiries", func(r chi.Router) {
			r.Get("/", controllers.AdminInquiryList(deps.Inquiries, logg))
			r.Post("/{inquiryId}/resolve", controllers.AdminInquiryResolve(deps.Inquiries, logg))
		})
		r.Route("/blog", func(r chi.Router) {
			r.Get("/", controllers.AdminBlogList(deps.Blog, logg))
			r.Post("/", controllers.AdminBlogCreate(deps.Blog, logg))
			r.Put("/{slug}", controllers.AdminBlogUpdate(deps.Blog, logg))
			r.Delete("/{postId}", controllers.AdminBlogDelete(deps.Blog, logg))
		})
	})

	return r
}
