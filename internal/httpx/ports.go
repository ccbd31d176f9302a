package httpx

import (
	"context"

	"github.com/jcmexdev/shoply-api/internal/auth"
	authdomain "github.com/jcmexdev/shoply-api/internal/auth/domain"
	"github.com/jcmexdev/shoply-api/internal/catalog"
	catalogdomain "github.com/jcmexdev/shoply-api/internal/catalog/domain"
	"github.com/jcmexdev/shoply-api/internal/orders"
	ordersdomain "github.com/jcmexdev/shoply-api/internal/orders/domain"
	"github.com/jcmexdev/shoply-api/internal/pkg/paging"
)

// The handler depends on these ports, not on the concrete services, so
// tests can drive it with fakes.

type CatalogService interface {
	List(ctx context.Context, query string, page paging.Params) (catalog.Page, error)
	ResolveSlug(ctx context.Context, raw string) (catalogdomain.Product, error)
	Create(ctx context.Context, p catalogdomain.Product) (catalogdomain.Product, error)
	Update(ctx context.Context, id string, patch catalogdomain.Patch) (catalogdomain.Product, error)
	Delete(ctx context.Context, id string) error
}

type OrderService interface {
	Create(ctx context.Context, in orders.CreateInput) (ordersdomain.Order, error)
	Get(ctx context.Context, id string) (ordersdomain.Order, error)
	List(ctx context.Context, page paging.Params) (orders.Page, error)
	Update(ctx context.Context, id string, patch ordersdomain.Patch) (ordersdomain.Order, error)
	Delete(ctx context.Context, id string) error
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (authdomain.User, string, error)
	Login(ctx context.Context, email, password string) (authdomain.User, string, error)
	VerifyToken(raw string) (auth.Claims, error)
}
