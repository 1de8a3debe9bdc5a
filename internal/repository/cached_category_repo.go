package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"seci_service/internal/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
)

const activeListKey = "active"

// cachedCategoryRepository serves single category lookups and the active list
// from memory. Every write bumps gen and drops the cached entries both before
// and after it reaches the store. A fill whose lookup started under an older
// gen is discarded, so a read racing a write cannot re-insert the old value.
type cachedCategoryRepository struct {
	next   domain.CategoryRepository
	byID   *expirable.LRU[string, domain.Category]
	active *expirable.LRU[string, []domain.Category]
	log    *logrus.Logger

	mu  sync.Mutex
	gen uint64
}

func NewCachedCategoryRepository(next domain.CategoryRepository, size int, ttl time.Duration, logger *logrus.Logger) (domain.CategoryRepository, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", size)
	}
	return &cachedCategoryRepository{
		next:   next,
		byID:   expirable.NewLRU[string, domain.Category](size, nil, ttl),
		active: expirable.NewLRU[string, []domain.Category](1, nil, ttl),
		log:    logger,
	}, nil
}

func (r *cachedCategoryRepository) generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

func (r *cachedCategoryRepository) invalidate(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	if id != "" {
		r.byID.Remove(id)
	}
	r.active.Purge()
}

func (r *cachedCategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	r.invalidate("")
	defer r.invalidate("")
	return r.next.CreateCategory(ctx, category)
}

func (r *cachedCategoryRepository) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	if c, ok := r.byID.Get(id); ok {
		r.log.Debugf("Cache hit for category ID %s", id)
		return &c, nil
	}

	gen := r.generation()
	c, err := r.next.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if r.gen == gen {
		r.byID.Add(id, *c)
	}
	r.mu.Unlock()
	return c, nil
}

func (r *cachedCategoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	r.invalidate(category.ID)
	defer r.invalidate(category.ID)
	return r.next.UpdateCategory(ctx, category)
}

func (r *cachedCategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	r.invalidate(id)
	defer r.invalidate(id)
	return r.next.DeleteCategory(ctx, id)
}

func (r *cachedCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return r.next.ListCategories(ctx)
}

func (r *cachedCategoryRepository) ListActiveCategories(ctx context.Context) ([]domain.Category, error) {
	if list, ok := r.active.Get(activeListKey); ok {
		r.log.Debug("Cache hit for active category list")
		return cloneCategories(list), nil
	}

	gen := r.generation()
	list, err := r.next.ListActiveCategories(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if r.gen == gen {
		r.active.Add(activeListKey, cloneCategories(list))
	}
	r.mu.Unlock()
	return list, nil
}

func (r *cachedCategoryRepository) PageActiveCategories(ctx context.Context, offset int64, limit int) ([]domain.Category, int64, error) {
	return r.next.PageActiveCategories(ctx, offset, limit)
}

func cloneCategories(in []domain.Category) []domain.Category {
	out := make([]domain.Category, len(in))
	copy(out, in)
	return out
}
