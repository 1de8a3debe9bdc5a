package repository

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"seci_service/internal/domain"

	"github.com/pkg/errors"
)

// MemoryCategoryRepository keeps categories in process memory. It backs the
// "memory" storage driver and the use case tests.
type MemoryCategoryRepository struct {
	mu         sync.RWMutex
	seq        int
	categories map[string]domain.Category
}

func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{categories: make(map[string]domain.Category)}
}

func (r *MemoryCategoryRepository) nameTaken(name, exceptID string) bool {
	for id, c := range r.categories {
		if c.Name == name && id != exceptID {
			return true
		}
	}
	return false
}

func (r *MemoryCategoryRepository) CreateCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(category.Name, "") {
		return nil, errors.Wrapf(domain.ErrConflict, "category with name '%s'", category.Name)
	}
	r.seq++
	now := time.Now().UTC()
	created := *category
	created.ID = strconv.Itoa(r.seq)
	created.CreatedAt = now
	created.UpdatedAt = now
	r.categories[created.ID] = created
	return &created, nil
}

func (r *MemoryCategoryRepository) GetCategoryByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, errors.Wrapf(domain.ErrNotFound, "category with id %s", id)
	}
	return &c, nil
}

func (r *MemoryCategoryRepository) UpdateCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.categories[category.ID]
	if !ok {
		return nil, errors.Wrapf(domain.ErrNotFound, "category with id %s", category.ID)
	}
	if r.nameTaken(category.Name, category.ID) {
		return nil, errors.Wrapf(domain.ErrConflict, "category with name '%s'", category.Name)
	}
	current.Name = category.Name
	current.Description = category.Description
	current.Active = category.Active
	current.UpdatedAt = time.Now().UTC()
	r.categories[current.ID] = current
	return &current, nil
}

func (r *MemoryCategoryRepository) DeleteCategory(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return errors.Wrapf(domain.ErrNotFound, "category with id %s", id)
	}
	delete(r.categories, id)
	return nil
}

func (r *MemoryCategoryRepository) ListCategories(_ context.Context) ([]domain.Category, error) {
	return r.sorted(false), nil
}

func (r *MemoryCategoryRepository) ListActiveCategories(_ context.Context) ([]domain.Category, error) {
	return r.sorted(true), nil
}

func (r *MemoryCategoryRepository) PageActiveCategories(_ context.Context, offset int64, limit int) ([]domain.Category, int64, error) {
	active := r.sorted(true)
	total := int64(len(active))
	start, end := window(offset, limit, total)
	return active[start:end], total, nil
}

// window clamps [offset, offset+limit) to [0, total].
func window(offset int64, limit int, total int64) (int64, int64) {
	if offset < 0 {
		offset = 0
	}
	if offset >= total || limit <= 0 {
		return total, total
	}
	end := total
	if int64(limit) < total-offset {
		end = offset + int64(limit)
	}
	return offset, end
}

func (r *MemoryCategoryRepository) sorted(activeOnly bool) []domain.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

type MemoryCommentRepository struct {
	mu       sync.RWMutex
	seq      int
	comments map[string]domain.Comment
}

func NewMemoryCommentRepository() *MemoryCommentRepository {
	return &MemoryCommentRepository{comments: make(map[string]domain.Comment)}
}

func (r *MemoryCommentRepository) CreateComment(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	created := *comment
	created.ID = strconv.Itoa(r.seq)
	r.comments[created.ID] = created
	return &created, nil
}

func (r *MemoryCommentRepository) GetCommentByID(_ context.Context, id string) (*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, errors.Wrapf(domain.ErrNotFound, "comment with id %s", id)
	}
	return &c, nil
}

func (r *MemoryCommentRepository) DeleteComment(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return errors.Wrapf(domain.ErrNotFound, "comment with id %s", id)
	}
	delete(r.comments, id)
	return nil
}

func (r *MemoryCommentRepository) ListCommentsByReport(_ context.Context, reportID string, offset int64, limit int) ([]domain.Comment, int64, error) {
	matched := r.newestFirst(func(c domain.Comment) bool { return c.ReportID == reportID })
	total := int64(len(matched))
	start, end := window(offset, limit, total)
	return matched[start:end], total, nil
}

func (r *MemoryCommentRepository) ListCommentsByUser(_ context.Context, userID string) ([]domain.Comment, error) {
	return r.newestFirst(func(c domain.Comment) bool { return c.UserID == userID }), nil
}

func (r *MemoryCommentRepository) newestFirst(keep func(domain.Comment) bool) []domain.Comment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Comment{}
	for _, c := range r.comments {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// MemoryStats is a CategoryStatsProvider fed explicitly by its owner.
type MemoryStats struct {
	mu    sync.RWMutex
	stats map[string]domain.CategoryStats
}

func NewMemoryStats() *MemoryStats {
	return &MemoryStats{stats: make(map[string]domain.CategoryStats)}
}

func (s *MemoryStats) Set(categoryID string, stats domain.CategoryStats) {
	s.mu.Lock()
	s.stats[categoryID] = stats
	s.mu.Unlock()
}

func (s *MemoryStats) StatsForCategories(_ context.Context, ids []string) (map[string]domain.CategoryStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.CategoryStats, len(ids))
	for _, id := range ids {
		if st, ok := s.stats[id]; ok {
			out[id] = st
		}
	}
	return out, nil
}
