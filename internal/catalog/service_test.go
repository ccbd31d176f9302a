package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/shoply-api/internal/catalog/domain"
	"github.com/jcmexdev/shoply-api/internal/pkg/paging"
)

// fakeRepo implements Repository with per-call hooks, so each test wires only
// what it needs.
type fakeRepo struct {
	InsertFn      func(ctx context.Context, p domain.Product) (domain.Product, error)
	FindByIDFn    func(ctx context.Context, id string) (domain.Product, error)
	FindBySlugsFn func(ctx context.Context, slugs []string) ([]domain.Product, error)
	ListFn        func(ctx context.Context, query string, page paging.Params) ([]domain.Product, int64, error)
	UpdateFn      func(ctx context.Context, id string, patch domain.Patch) (domain.Product, error)
	DeleteFn      func(ctx context.Context, id string) error
}

func (f *fakeRepo) Insert(ctx context.Context, p domain.Product) (domain.Product, error) {
	return f.InsertFn(ctx, p)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (domain.Product, error) {
	return f.FindByIDFn(ctx, id)
}
func (f *fakeRepo) FindBySlugs(ctx context.Context, slugs []string) ([]domain.Product, error) {
	return f.FindBySlugsFn(ctx, slugs)
}
func (f *fakeRepo) List(ctx context.Context, query string, page paging.Params) ([]domain.Product, int64, error) {
	return f.ListFn(ctx, query, page)
}
func (f *fakeRepo) Update(ctx context.Context, id string, patch domain.Patch) (domain.Product, error) {
	return f.UpdateFn(ctx, id, patch)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

// memCache is an in-memory cache.Cache for observing set/invalidate traffic.
type memCache struct {
	entries map[string]string
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]string{}}
}

func (m *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		m.entries[key] = string(v)
	case string:
		m.entries[key] = v
	default:
		return fmt.Errorf("unexpected cache value type %T", value)
	}
	return nil
}

func (m *memCache) Get(_ context.Context, key string) (string, error) {
	return m.entries[key], nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

func (m *memCache) GenerateKey(operation, key string) string {
	return "test:" + operation + ":" + key
}

func TestListPagination(t *testing.T) {
	// 15 records total, the repo returns what the page asks for.
	all := make([]domain.Product, 15)
	for i := range all {
		all[i] = domain.Product{ID: string(rune('a' + i))}
	}
	repo := &fakeRepo{
		ListFn: func(_ context.Context, _ string, page paging.Params) ([]domain.Product, int64, error) {
			lo := page.Skip()
			hi := lo + page.Limit
			if hi > len(all) {
				hi = len(all)
			}
			return all[lo:hi], int64(len(all)), nil
		},
	}
	svc := NewService(repo, nil)

	first, err := svc.List(context.Background(), "", paging.Clamp(1, 12))
	require.NoError(t, err)
	assert.Len(t, first.Items, 12)
	assert.Equal(t, int64(15), first.Total)
	assert.True(t, first.HasNext)

	second, err := svc.List(context.Background(), "", paging.Clamp(2, 12))
	require.NoError(t, err)
	assert.Len(t, second.Items, 3)
	assert.False(t, second.HasNext)
}

func TestResolveSlugPaddingVariants(t *testing.T) {
	stored := domain.Product{ID: "p1", Slug: "abc-005", Title: "Abc"}
	repo := &fakeRepo{
		FindBySlugsFn: func(_ context.Context, slugs []string) ([]domain.Product, error) {
			for _, s := range slugs {
				if s == stored.Slug {
					return []domain.Product{stored}, nil
				}
			}
			return nil, nil
		},
	}
	svc := NewService(repo, nil)

	for _, raw := range []string{"abc-5", "abc-05", "abc-005", " ABC-5 "} {
		got, err := svc.ResolveSlug(context.Background(), raw)
		require.NoError(t, err, "raw=%q", raw)
		assert.Equal(t, "p1", got.ID)
	}

	// Unrelated padding is not a match: stored "abc-005" is not reachable
	// from "abc-50".
	_, err := svc.ResolveSlug(context.Background(), "abc-50")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveSlugPrefersEarliestCandidate(t *testing.T) {
	// Two records collide across padding variants; the exact spelling wins.
	repo := &fakeRepo{
		FindBySlugsFn: func(_ context.Context, slugs []string) ([]domain.Product, error) {
			return []domain.Product{
				{ID: "padded", Slug: "abc-005"},
				{ID: "exact", Slug: "abc-5"},
			}, nil
		},
	}
	svc := NewService(repo, nil)

	got, err := svc.ResolveSlug(context.Background(), "abc-5")
	require.NoError(t, err)
	assert.Equal(t, "exact", got.ID)
}

func TestMutationInvalidatesAliasCacheKeys(t *testing.T) {
	// A lookup through a padding alias is cached under the requested slug
	// ("abc-5"), not the stored one ("abc-005"). Mutations must drop those
	// alias keys too, or lookups keep serving the pre-mutation record.
	stored := &domain.Product{ID: "p1", Slug: "abc-005", Title: "Abc", Price: 100}
	deleted := false
	repo := &fakeRepo{
		FindByIDFn: func(_ context.Context, id string) (domain.Product, error) {
			if deleted {
				return domain.Product{}, domain.ErrNotFound
			}
			return *stored, nil
		},
		FindBySlugsFn: func(_ context.Context, slugs []string) ([]domain.Product, error) {
			if deleted {
				return nil, nil
			}
			for _, s := range slugs {
				if s == stored.Slug {
					return []domain.Product{*stored}, nil
				}
			}
			return nil, nil
		},
		UpdateFn: func(_ context.Context, id string, patch domain.Patch) (domain.Product, error) {
			if patch.Price != nil {
				stored.Price = *patch.Price
			}
			return *stored, nil
		},
		DeleteFn: func(_ context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	c := newMemCache()
	svc := NewService(repo, c)
	ctx := context.Background()

	got, err := svc.ResolveSlug(ctx, "abc-5")
	require.NoError(t, err)
	require.Equal(t, int64(100), got.Price)
	require.Contains(t, c.entries, "test:slug:abc-5", "lookup is cached under the requested slug")

	// Price change is visible through the alias immediately.
	newPrice := int64(200)
	_, err = svc.Update(ctx, "p1", domain.Patch{Price: &newPrice})
	require.NoError(t, err)

	got, err = svc.ResolveSlug(ctx, "abc-5")
	require.NoError(t, err)
	assert.Equal(t, int64(200), got.Price)

	// So is the delete: the alias must not resurrect the record.
	require.NoError(t, svc.Delete(ctx, "p1"))
	_, err = svc.ResolveSlug(ctx, "abc-5")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, c.entries)
}

func TestSlugAliases(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"abc-005", "abc-5", "abc-05"},
		domain.SlugAliases("abc-005"))
	assert.ElementsMatch(t,
		[]string{"abc-5", "abc-05", "abc-005"},
		domain.SlugAliases("abc-5"))
	assert.Equal(t, []string{"plain-slug"}, domain.SlugAliases("plain-slug"))
	assert.Nil(t, domain.SlugAliases("  "))
}

func TestResolveSlugEmpty(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)
	_, err := svc.ResolveSlug(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateNormalizesSlug(t *testing.T) {
	repo := &fakeRepo{
		InsertFn: func(_ context.Context, p domain.Product) (domain.Product, error) {
			return p, nil
		},
	}
	svc := NewService(repo, nil)

	created, err := svc.Create(context.Background(), domain.Product{Slug: "  New-Thing-1 ", Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, "new-thing-1", created.Slug)
}

func TestDeleteDoesNotTouchOrders(t *testing.T) {
	// Delete only calls the product repository; there is no cascade hook to
	// reach into orders.
	deleted := false
	repo := &fakeRepo{
		FindByIDFn: func(_ context.Context, id string) (domain.Product, error) {
			return domain.Product{ID: id, Slug: "gone-1"}, nil
		},
		DeleteFn: func(_ context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	svc := NewService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), "p9"))
	assert.True(t, deleted)
}
