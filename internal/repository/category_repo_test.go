package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"seci_service/internal/domain"
	"seci_service/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categoryCols = []string{"id", "name", "description", "active", "created_at", "updated_at"}

func newSQLMock(t *testing.T) (sqlmock.Sqlmock, func() domain.CategoryRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return mock, func() domain.CategoryRepository {
		return repository.NewPostgresCategoryRepository(db, testLogger())
	}
}

func TestPostgresCategoryRepository_Create(t *testing.T) {
	mock, newRepo := newSQLMock(t)
	now := time.Now().UTC()
	id := uuid.NewString()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO categories")).
		WithArgs(sqlmock.AnyArg(), "Infrastructure", "Roads", true, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(categoryCols).AddRow(id, "Infrastructure", "Roads", true, now, now))

	created, err := newRepo().CreateCategory(context.Background(), &domain.Category{Name: "Infrastructure", Description: "Roads", Active: true})
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.Equal(t, "Infrastructure", created.Name)
}

func TestPostgresCategoryRepository_CreateDuplicate(t *testing.T) {
	mock, newRepo := newSQLMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO categories")).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := newRepo().CreateCategory(context.Background(), &domain.Category{Name: "Infrastructure"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestPostgresCategoryRepository_GetByID(t *testing.T) {
	mock, newRepo := newSQLMock(t)
	repo := newRepo()
	now := time.Now().UTC()
	found, missing := uuid.NewString(), uuid.NewString()

	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE id = $1")).
		WithArgs(found).
		WillReturnRows(sqlmock.NewRows(categoryCols).AddRow(found, "Parks", "", false, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE id = $1")).
		WithArgs(missing).
		WillReturnRows(sqlmock.NewRows(categoryCols))

	got, err := repo.GetCategoryByID(context.Background(), found)
	require.NoError(t, err)
	assert.Equal(t, "Parks", got.Name)
	assert.False(t, got.Active)

	_, err = repo.GetCategoryByID(context.Background(), missing)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// Not a uuid: rejected without touching the database.
	_, err = repo.GetCategoryByID(context.Background(), "42")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPostgresCategoryRepository_Update(t *testing.T) {
	mock, newRepo := newSQLMock(t)
	repo := newRepo()
	now := time.Now().UTC()
	id := uuid.NewString()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE categories SET")).
		WithArgs("Water", "", false, sqlmock.AnyArg(), id).
		WillReturnRows(sqlmock.NewRows(categoryCols).AddRow(id, "Water", "", false, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE categories SET")).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE categories SET")).
		WillReturnRows(sqlmock.NewRows(categoryCols))

	updated, err := repo.UpdateCategory(context.Background(), &domain.Category{ID: id, Name: "Water"})
	require.NoError(t, err)
	assert.Equal(t, "Water", updated.Name)

	_, err = repo.UpdateCategory(context.Background(), &domain.Category{ID: id, Name: "Taken"})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = repo.UpdateCategory(context.Background(), &domain.Category{ID: id, Name: "Gone"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPostgresCategoryRepository_DeleteTwice(t *testing.T) {
	mock, newRepo := newSQLMock(t)
	repo := newRepo()
	id := uuid.NewString()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteCategory(context.Background(), id))
	assert.True(t, errors.Is(repo.DeleteCategory(context.Background(), id), domain.ErrNotFound))
}

func TestPostgresCategoryRepository_PageActive(t *testing.T) {
	mock, newRepo := newSQLMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM categories WHERE active")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(2, int64(2)).
		WillReturnRows(sqlmock.NewRows(categoryCols).AddRow(uuid.NewString(), "Water", "", true, now, now))

	page, total, err := newRepo().PageActiveCategories(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "Water", page[0].Name)
}

func TestPostgresCategoryRepository_ListEmpty(t *testing.T) {
	mock, newRepo := newSQLMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY name ASC, id ASC")).
		WillReturnRows(sqlmock.NewRows(categoryCols))

	list, err := newRepo().ListCategories(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestPostgresReportStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	stats := repository.NewPostgresReportStats(db, "reports", "category_id", testLogger())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "category_id", COUNT(*) FROM "reports" WHERE "category_id" = ANY($1) GROUP BY "category_id"`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "count"}).AddRow("a", 4).AddRow("b", 1))

	got, err := stats.StatsForCategories(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.CategoryStats{"a": {ReportCount: 4}, "b": {ReportCount: 1}}, got)

	empty, err := stats.StatsForCategories(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NoError(t, mock.ExpectationsWereMet())
}
