// Package catalog implements product listing, slug resolution, and the
// admin-facing product CRUD operations.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jcmexdev/shoply-api/internal/catalog/domain"
	"github.com/jcmexdev/shoply-api/internal/pkg/cache"
	"github.com/jcmexdev/shoply-api/internal/pkg/paging"
)

// slugCacheTTL bounds how stale a cached slug lookup may be. Admin mutations
// invalidate eagerly, so the TTL only matters for out-of-band writes.
const slugCacheTTL = 5 * time.Minute

// Repository is the port to the product document store.
type Repository interface {
	Insert(ctx context.Context, p domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]domain.Product, error)
	List(ctx context.Context, query string, page paging.Params) ([]domain.Product, int64, error)
	Update(ctx context.Context, id string, patch domain.Patch) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// Page is one page of catalog listing results.
type Page struct {
	Items   []domain.Product
	Page    int
	Limit   int
	Total   int64
	HasNext bool
}

// Service coordinates the repository and the lookup cache.
// The cache may be nil — lookups then always hit the store.
type Service struct {
	repo  Repository
	cache cache.Cache
}

func NewService(repo Repository, c cache.Cache) *Service {
	return &Service{repo: repo, cache: c}
}

// List returns a page of products, newest first. query is matched
// case-insensitively as a substring of title, brand, or category.
func (s *Service) List(ctx context.Context, query string, page paging.Params) (Page, error) {
	items, total, err := s.repo.List(ctx, query, page)
	if err != nil {
		return Page{}, fmt.Errorf("catalog: list products: %w", err)
	}
	return Page{
		Items:   items,
		Page:    page.Page,
		Limit:   page.Limit,
		Total:   total,
		HasNext: page.HasNext(total),
	}, nil
}

// ResolveSlug looks a product up by its slug, tolerating numeric-suffix
// padding differences. When several candidate spellings match distinct
// records, the earliest candidate (exact, then 2-pad, then 3-pad) wins.
func (s *Service) ResolveSlug(ctx context.Context, raw string) (domain.Product, error) {
	candidates := domain.SlugCandidates(raw)
	if len(candidates) == 0 {
		return domain.Product{}, domain.ErrNotFound
	}

	if p, ok := s.cacheGet(ctx, candidates[0]); ok {
		return p, nil
	}

	matches, err := s.repo.FindBySlugs(ctx, candidates)
	if err != nil {
		return domain.Product{}, fmt.Errorf("catalog: resolve slug %q: %w", candidates[0], err)
	}

	for _, candidate := range candidates {
		for _, p := range matches {
			if p.Slug == candidate {
				s.cacheSet(ctx, candidates[0], p)
				return p, nil
			}
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

// GetByID fetches a product by its opaque id.
func (s *Service) GetByID(ctx context.Context, id string) (domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Create persists a new product. Cached lookups for the new slug's aliases
// are dropped: the new record may now win a resolution an alias previously
// cached for another product.
func (s *Service) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Slug = domain.NormalizeSlug(p.Slug)
	created, err := s.repo.Insert(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("catalog: create product: %w", err)
	}
	s.cacheInvalidate(ctx, created.Slug)
	return created, nil
}

// Update merges a partial record into the stored product and invalidates
// any cached lookup for its old and new slugs.
func (s *Service) Update(ctx context.Context, id string, patch domain.Patch) (domain.Product, error) {
	if patch.Slug != nil {
		normalized := domain.NormalizeSlug(*patch.Slug)
		patch.Slug = &normalized
	}

	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.Product{}, err
	}

	s.cacheInvalidate(ctx, before.Slug, updated.Slug)
	return updated, nil
}

// Delete removes a product unconditionally. Orders referencing the product
// keep their snapshot; there is no cascade.
func (s *Service) Delete(ctx context.Context, id string) error {
	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cacheInvalidate(ctx, before.Slug)
	return nil
}

func (s *Service) cacheGet(ctx context.Context, slug string) (domain.Product, bool) {
	if s.cache == nil {
		return domain.Product{}, false
	}
	raw, err := s.cache.Get(ctx, s.cache.GenerateKey("slug", slug))
	if err != nil {
		slog.WarnContext(ctx, "product cache read failed", "slug", slug, "error", err)
		return domain.Product{}, false
	}
	if raw == "" {
		return domain.Product{}, false
	}
	var p domain.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.Product{}, false
	}
	return p, true
}

func (s *Service) cacheSet(ctx context.Context, slug string, p domain.Product) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.GenerateKey("slug", slug), raw, slugCacheTTL); err != nil {
		slog.WarnContext(ctx, "product cache write failed", "slug", slug, "error", err)
	}
}

// cacheInvalidate drops the cached lookup for each slug and for every
// padding alias of it: a lookup is cached under the slug the caller asked
// for, which may differ from the stored spelling.
func (s *Service) cacheInvalidate(ctx context.Context, slugs ...string) {
	if s.cache == nil {
		return
	}
	seen := map[string]bool{}
	var keys []string
	for _, slug := range slugs {
		for _, alias := range domain.SlugAliases(slug) {
			if key := s.cache.GenerateKey("slug", alias); !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		slog.WarnContext(ctx, "product cache invalidation failed", "error", err)
	}
}
