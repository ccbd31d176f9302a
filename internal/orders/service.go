// Package orders implements checkout (public order creation) and the
// admin-facing order operations.
package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	catalogdomain "github.com/jcmexdev/shoply-api/internal/catalog/domain"
	"github.com/jcmexdev/shoply-api/internal/orders/domain"
	"github.com/jcmexdev/shoply-api/internal/orders/orderlog"
	"github.com/jcmexdev/shoply-api/internal/pkg/paging"
)

// Repository is the port to the order document store.
type Repository interface {
	Insert(ctx context.Context, o domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, id string) (domain.Order, error)
	List(ctx context.Context, page paging.Params) ([]domain.Order, int64, error)
	Update(ctx context.Context, id string, patch domain.Patch) (domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// ProductFinder is the port to the catalog: checkout needs the authoritative
// price and title of every ordered product.
type ProductFinder interface {
	GetByID(ctx context.Context, id string) (catalogdomain.Product, error)
}

// ValidationError reports per-field failures of a checkout submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "invalid order: " + strings.Join(parts, "; ")
}

// CreateItem is one requested line of a checkout submission.
type CreateItem struct {
	ProductID string
	Quantity  int
}

// CreateInput is a decoded, not yet validated, checkout submission.
type CreateInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	PaymentMethod   string
	Note            string
	PromoCode       string
	Items           []CreateItem
}

// Page is one page of order listing results.
type Page struct {
	Items   []domain.Order
	Page    int
	Limit   int
	Total   int64
	HasNext bool
}

// Service coordinates the order store, the catalog, and the event log.
// The event log may be nil — transitions are then not audited.
type Service struct {
	repo        Repository
	products    ProductFinder
	log         orderlog.Repository
	shippingFee int64
}

func NewService(repo Repository, products ProductFinder, log orderlog.Repository, shippingFee int64) *Service {
	return &Service{
		repo:        repo,
		products:    products,
		log:         log,
		shippingFee: shippingFee,
	}
}

// Create validates a checkout submission, snapshots authoritative product
// prices, and persists a pending order. The stored total is always computed
// here from the catalog, never taken from the client.
//
// Stock is looked up but not decremented; the storefront shows availability
// and fulfilment reconciles stock out of band.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Order, error) {
	fields := map[string]string{}

	if strings.TrimSpace(in.CustomerName) == "" {
		fields["customerName"] = "is required"
	}
	if strings.TrimSpace(in.CustomerAddress) == "" {
		fields["customerAddress"] = "is required"
	}
	method := domain.PaymentMethod(in.PaymentMethod)
	if !method.IsValid() {
		fields["paymentMethod"] = "must be one of cod, banking, momo"
	}
	if len(in.Items) == 0 {
		fields["items"] = "at least one item is required"
	}
	for i, it := range in.Items {
		if it.ProductID == "" {
			fields[fmt.Sprintf("items[%d].productId", i)] = "is required"
		}
		if it.Quantity < 1 {
			fields[fmt.Sprintf("items[%d].quantity", i)] = "must be at least 1"
		}
	}
	if len(fields) > 0 {
		return domain.Order{}, &ValidationError{Fields: fields}
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	for i, it := range in.Items {
		p, err := s.products.GetByID(ctx, it.ProductID)
		if errors.Is(err, catalogdomain.ErrNotFound) {
			fields[fmt.Sprintf("items[%d].productId", i)] = "unknown product"
			continue
		}
		if err != nil {
			return domain.Order{}, fmt.Errorf("orders: look up product %s: %w", it.ProductID, err)
		}
		items = append(items, domain.OrderItem{
			ProductID: p.ID,
			Title:     p.Title,
			UnitPrice: p.Price,
			Quantity:  it.Quantity,
		})
	}
	if len(fields) > 0 {
		return domain.Order{}, &ValidationError{Fields: fields}
	}

	totals := domain.CalcTotals(items, in.PromoCode, s.shippingFee)

	order := domain.Order{
		Reference:       newReference(),
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		CustomerAddress: strings.TrimSpace(in.CustomerAddress),
		PaymentMethod:   method,
		Note:            in.Note,
		Items:           items,
		Subtotal:        totals.Subtotal,
		ShippingFee:     totals.ShippingFee,
		Total:           totals.Total,
		Status:          domain.StatusPending,
	}

	created, err := s.repo.Insert(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders: create order: %w", err)
	}

	slog.InfoContext(ctx, "order created",
		"order_id", created.ID,
		"items", len(created.Items),
		"total", created.Total,
	)
	s.audit(ctx, orderlog.NewEntry(ctx, created.ID, orderlog.EventCreated, "", string(created.Status), marshalPayload(created)))

	return created, nil
}

// Get fetches an order by id. Public: the checkout confirmation page polls it.
func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of orders, newest first. Admin only; enforced at the
// HTTP boundary.
func (s *Service) List(ctx context.Context, page paging.Params) (Page, error) {
	items, total, err := s.repo.List(ctx, page)
	if err != nil {
		return Page{}, fmt.Errorf("orders: list orders: %w", err)
	}
	return Page{
		Items:   items,
		Page:    page.Page,
		Limit:   page.Limit,
		Total:   total,
		HasNext: page.HasNext(total),
	}, nil
}

// Update merges a partial admin edit into the stored order. A status value,
// when present, must be one of the enumerated states.
func (s *Service) Update(ctx context.Context, id string, patch domain.Patch) (domain.Order, error) {
	if patch.Status != nil && !patch.Status.IsValid() {
		return domain.Order{}, &ValidationError{Fields: map[string]string{
			"status": "must be one of pending, paid, canceled",
		}}
	}

	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.Order{}, err
	}

	if patch.Status != nil && before.Status != updated.Status {
		slog.InfoContext(ctx, "order status changed",
			"order_id", id,
			"from", before.Status,
			"to", updated.Status,
		)
		s.audit(ctx, orderlog.NewEntry(ctx, id, orderlog.EventStatusChanged,
			string(before.Status), string(updated.Status), ""))
	}
	return updated, nil
}

// Delete removes an order unconditionally. The event log keeps its trace.
func (s *Service) Delete(ctx context.Context, id string) error {
	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit(ctx, orderlog.NewEntry(ctx, id, orderlog.EventDeleted, string(before.Status), "", ""))
	return nil
}

// audit writes an event log entry; failures are logged, never surfaced, so
// the log can never fail a customer request.
func (s *Service) audit(ctx context.Context, entry *orderlog.Entry) {
	if s.log == nil {
		return
	}
	if err := s.log.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "order event log write failed",
			"order_id", entry.OrderID,
			"event", entry.Event,
			"error", err,
		)
	}
}

// newReference mints the short customer-facing order code, e.g. "SHP-9F2A41C0".
func newReference() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "SHP-" + strings.ToUpper(raw[:8])
}

func marshalPayload(o domain.Order) string {
	b, err := json.Marshal(o)
	if err != nil {
		return ""
	}
	return string(b)
}
