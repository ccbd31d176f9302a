package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authdomain "github.com/jcmexdev/shoply-api/internal/auth/domain"
	"github.com/jcmexdev/shoply-api/internal/httpx/middlewares"
)

// NewRouter assembles the full route tree. Storefront reads and checkout
// are public; order administration and product mutation require an admin
// bearer token.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.Trace)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	requireAdmin := []func(http.Handler) http.Handler{
		middlewares.RequireAuth(handler.auth),
		middlewares.RequireRole(authdomain.RoleAdmin),
	}

	r.Get("/", handler.Root)

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/health", handler.Health)

		api.Route("/products", func(pr chi.Router) {
			pr.Get("/", handler.ListProducts)
			pr.Get("/{slug}", handler.GetProductBySlug)

			pr.Group(func(admin chi.Router) {
				admin.Use(requireAdmin...)
				admin.Post("/", handler.CreateProduct)
				admin.Patch("/{id}", handler.UpdateProduct)
				admin.Delete("/{id}", handler.DeleteProduct)
			})
		})

		api.Route("/orders", func(or chi.Router) {
			or.Post("/", handler.CreateOrder)
			or.Get("/{id}", handler.GetOrder)

			or.Group(func(admin chi.Router) {
				admin.Use(requireAdmin...)
				admin.Get("/", handler.ListOrders)
				admin.Patch("/{id}", handler.UpdateOrder)
				admin.Delete("/{id}", handler.DeleteOrder)
			})
		})

		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", handler.Register)
			ar.Post("/login", handler.Login)
		})
	})

	r.NotFound(handler.NotFound)

	return r
}
