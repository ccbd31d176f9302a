package httpx

import (
	"time"

	authdomain "github.com/jcmexdev/shoply-api/internal/auth/domain"
	catalogdomain "github.com/jcmexdev/shoply-api/internal/catalog/domain"
	"github.com/jcmexdev/shoply-api/internal/orders"
	ordersdomain "github.com/jcmexdev/shoply-api/internal/orders/domain"
)

// ---- envelopes ----

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type errorEnvelope struct {
	OK    bool      `json:"ok"`
	Error errorBody `json:"error"`
}

type listEnvelope struct {
	Data    any   `json:"data"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"hasNext"`
}

// ---- products ----

type productResponse struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Price       int64    `json:"price"`
	Stock       int      `json:"stock"`
	Brand       string   `json:"brand,omitempty"`
	Category    string   `json:"category,omitempty"`
	Images      []string `json:"images,omitempty"`
	Description string   `json:"description,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// storefrontProduct is the trimmed projection returned by the slug lookup:
// just the fields the product page and checkout need.
type storefrontProduct struct {
	ID     string   `json:"id"`
	Slug   string   `json:"slug"`
	Title  string   `json:"title"`
	Price  int64    `json:"price"`
	Images []string `json:"images,omitempty"`
	Stock  int      `json:"stock"`
}

type createProductRequest struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Price       *int64   `json:"price"`
	Stock       *int     `json:"stock"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
}

// validate returns the product to insert, or per-field errors.
func (r createProductRequest) validate() (catalogdomain.Product, map[string]string) {
	fields := map[string]string{}
	if r.Slug == "" {
		fields["slug"] = "is required"
	}
	if r.Title == "" {
		fields["title"] = "is required"
	}
	if r.Price == nil || *r.Price <= 0 {
		fields["price"] = "must be a positive number"
	}
	stock := 0
	if r.Stock != nil {
		if *r.Stock < 0 {
			fields["stock"] = "must be zero or greater"
		}
		stock = *r.Stock
	}
	if len(fields) > 0 {
		return catalogdomain.Product{}, fields
	}

	return catalogdomain.Product{
		Slug:        r.Slug,
		Title:       r.Title,
		Price:       *r.Price,
		Stock:       stock,
		Brand:       r.Brand,
		Category:    r.Category,
		Images:      r.Images,
		Description: r.Description,
		Rating:      r.Rating,
	}, nil
}

type updateProductRequest struct {
	Slug        *string   `json:"slug"`
	Title       *string   `json:"title"`
	Price       *int64    `json:"price"`
	Stock       *int      `json:"stock"`
	Brand       *string   `json:"brand"`
	Category    *string   `json:"category"`
	Images      *[]string `json:"images"`
	Description *string   `json:"description"`
	Rating      *float64  `json:"rating"`
}

func (r updateProductRequest) validate() (catalogdomain.Patch, map[string]string) {
	fields := map[string]string{}
	if r.Slug != nil && *r.Slug == "" {
		fields["slug"] = "must not be empty"
	}
	if r.Title != nil && *r.Title == "" {
		fields["title"] = "must not be empty"
	}
	if r.Price != nil && *r.Price <= 0 {
		fields["price"] = "must be a positive number"
	}
	if r.Stock != nil && *r.Stock < 0 {
		fields["stock"] = "must be zero or greater"
	}

	patch := catalogdomain.Patch{
		Slug:        r.Slug,
		Title:       r.Title,
		Price:       r.Price,
		Stock:       r.Stock,
		Brand:       r.Brand,
		Category:    r.Category,
		Images:      r.Images,
		Description: r.Description,
		Rating:      r.Rating,
	}
	if patch.IsZero() {
		fields["body"] = "no updatable fields supplied"
	}
	if len(fields) > 0 {
		return catalogdomain.Patch{}, fields
	}
	return patch, nil
}

func toProductResponse(p catalogdomain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Price:       p.Price,
		Stock:       p.Stock,
		Brand:       p.Brand,
		Category:    p.Category,
		Images:      p.Images,
		Description: p.Description,
		Rating:      p.Rating,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toStorefrontProduct(p catalogdomain.Product) storefrontProduct {
	return storefrontProduct{
		ID:     p.ID,
		Slug:   p.Slug,
		Title:  p.Title,
		Price:  p.Price,
		Images: p.Images,
		Stock:  p.Stock,
	}
}

// ---- orders ----

type orderItemDTO struct {
	ProductID string `json:"productId"`
	Title     string `json:"title,omitempty"`
	UnitPrice int64  `json:"unitPrice,omitempty"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	CustomerName    string         `json:"customerName"`
	CustomerPhone   string         `json:"customerPhone"`
	CustomerAddress string         `json:"customerAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
	Note            string         `json:"note"`
	PromoCode       string         `json:"promoCode"`
	Items           []orderItemDTO `json:"items"`
}

// toInput is decode-only; the orders service owns validation.
func (r createOrderRequest) toInput() orders.CreateInput {
	items := make([]orders.CreateItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = orders.CreateItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return orders.CreateInput{
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		PaymentMethod:   r.PaymentMethod,
		Note:            r.Note,
		PromoCode:       r.PromoCode,
		Items:           items,
	}
}

type updateOrderRequest struct {
	Status          *string `json:"status"`
	CustomerName    *string `json:"customerName"`
	CustomerPhone   *string `json:"customerPhone"`
	CustomerAddress *string `json:"customerAddress"`
	Note            *string `json:"note"`
}

func (r updateOrderRequest) toPatch() (ordersdomain.Patch, map[string]string) {
	patch := ordersdomain.Patch{
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		Note:            r.Note,
	}
	if r.Status != nil {
		status := ordersdomain.Status(*r.Status)
		patch.Status = &status
	}
	if patch.IsZero() {
		return ordersdomain.Patch{}, map[string]string{"body": "no updatable fields supplied"}
	}
	return patch, nil
}

type orderResponse struct {
	ID              string         `json:"id"`
	Reference       string         `json:"reference"`
	CustomerName    string         `json:"customerName"`
	CustomerPhone   string         `json:"customerPhone,omitempty"`
	CustomerAddress string         `json:"customerAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
	Note            string         `json:"note,omitempty"`
	Items           []orderItemDTO `json:"items"`
	Subtotal        int64          `json:"subtotal"`
	ShippingFee     int64          `json:"shippingFee"`
	Total           int64          `json:"total"`
	Status          string         `json:"status"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
}

func toOrderResponse(o ordersdomain.Order) orderResponse {
	items := make([]orderItemDTO, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemDTO{
			ProductID: it.ProductID,
			Title:     it.Title,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		}
	}
	return orderResponse{
		ID:              o.ID,
		Reference:       o.Reference,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		PaymentMethod:   string(o.PaymentMethod),
		Note:            o.Note,
		Items:           items,
		Subtotal:        o.Subtotal,
		ShippingFee:     o.ShippingFee,
		Total:           o.Total,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       o.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ---- auth ----

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u authdomain.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}
