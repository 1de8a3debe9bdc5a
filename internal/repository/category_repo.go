package repository

import (
	"context"
	"database/sql"
	"time"

	"seci_service/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	pgUniqueViolation = "23505"
	categoryColumns   = `id, name, description, active, created_at, updated_at`
)

type postgresCategoryRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCategoryRepository(db *sql.DB, logger *logrus.Logger) domain.CategoryRepository {
	return &postgresCategoryRepository{
		db:  db,
		log: logger,
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	category := &domain.Category{}
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.Active,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *postgresCategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `INSERT INTO categories (id, name, description, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $5)
        RETURNING ` + categoryColumns
	now := time.Now().UTC()
	created, err := scanCategory(r.db.QueryRowContext(ctx, query,
		uuid.NewString(), category.Name, category.Description, category.Active, now))
	if err != nil {
		if isUniqueViolation(err) {
			r.log.Warnf("Attempted to create category with duplicate name: %s", category.Name)
			return nil, errors.Wrapf(domain.ErrConflict, "category with name '%s'", category.Name)
		}
		r.log.Errorf("Failed to create category '%s': %v", category.Name, err)
		return nil, errors.Wrap(err, "could not create category")
	}
	r.log.Infof("Category created successfully with ID: %s, Name: %s", created.ID, created.Name)
	return created, nil
}

func (r *postgresCategoryRepository) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		r.log.Warnf("Category ID %q is not a valid uuid", id)
		return nil, errors.Wrapf(domain.ErrNotFound, "category with id %s", id)
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	category, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Category with ID %s not found", id)
			return nil, errors.Wrapf(domain.ErrNotFound, "category with id %s", id)
		}
		r.log.Errorf("Failed to get category by ID %s: %v", id, err)
		return nil, errors.Wrap(err, "could not get category by id")
	}
	r.log.Infof("Category retrieved successfully with ID: %s", id)
	return category, nil
}

func (r *postgresCategoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if _, err := uuid.Parse(category.ID); err != nil {
		r.log.Warnf("Category ID %q is not a valid uuid", category.ID)
		return nil, errors.Wrapf(domain.ErrNotFound, "category with id %s", category.ID)
	}

	query := `UPDATE categories SET name = $1, description = $2, active = $3, updated_at = $4
        WHERE id = $5 RETURNING ` + categoryColumns
	updated, err := scanCategory(r.db.QueryRowContext(ctx, query,
		category.Name, category.Description, category.Active, time.Now().UTC(), category.ID))
	if err != nil {
		if isUniqueViolation(err) {
			r.log.Warnf("Attempted to update category ID %s with duplicate name: %s", category.ID, category.Name)
			return nil, errors.Wrapf(domain.ErrConflict, "category with name '%s'", category.Name)
		}
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Category with ID %s not found for update", category.ID)
			return nil, errors.Wrapf(domain.ErrNotFound, "category with id %s", category.ID)
		}
		r.log.Errorf("Failed to update category ID %s: %v", category.ID, err)
		return nil, errors.Wrap(err, "could not update category")
	}
	r.log.Infof("Category updated successfully with ID: %s", updated.ID)
	return updated, nil
}

func (r *postgresCategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		r.log.Warnf("Category ID %q is not a valid uuid", id)
		return errors.Wrapf(domain.ErrNotFound, "category with id %s", id)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Failed to delete category ID %s: %v", id, err)
		return errors.Wrap(err, "could not delete category")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting category ID %s: %v", id, err)
		return errors.Wrap(err, "could not confirm category deletion")
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent category ID %s", id)
		return errors.Wrapf(domain.ErrNotFound, "category with id %s", id)
	}

	r.log.Infof("Category deleted successfully with ID: %s", id)
	return nil
}

func (r *postgresCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name ASC, id ASC`
	categories, err := r.query(ctx, query)
	if err != nil {
		r.log.Errorf("Failed to list categories: %v", err)
		return nil, errors.Wrap(err, "could not list categories")
	}
	r.log.Infof("Retrieved %d categories", len(categories))
	return categories, nil
}

func (r *postgresCategoryRepository) ListActiveCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE active ORDER BY name ASC, id ASC`
	categories, err := r.query(ctx, query)
	if err != nil {
		r.log.Errorf("Failed to list active categories: %v", err)
		return nil, errors.Wrap(err, "could not list active categories")
	}
	r.log.Infof("Retrieved %d active categories", len(categories))
	return categories, nil
}

func (r *postgresCategoryRepository) PageActiveCategories(ctx context.Context, offset int64, limit int) ([]domain.Category, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE active`).Scan(&total); err != nil {
		r.log.Errorf("Failed to count active categories: %v", err)
		return nil, 0, errors.Wrap(err, "could not count active categories")
	}
	if total == 0 || offset >= total {
		return []domain.Category{}, total, nil
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE active
        ORDER BY name ASC, id ASC LIMIT $1 OFFSET $2`
	categories, err := r.query(ctx, query, limit, offset)
	if err != nil {
		r.log.Errorf("Failed to page active categories (offset %d, limit %d): %v", offset, limit, err)
		return nil, 0, errors.Wrap(err, "could not page active categories")
	}
	r.log.Infof("Retrieved %d of %d active categories at offset %d", len(categories), total, offset)
	return categories, total, nil
}

func (r *postgresCategoryRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, errors.Wrap(err, "could not scan category row")
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating categories")
	}
	return categories, nil
}
