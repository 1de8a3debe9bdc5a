package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"seci_service/internal/domain"
	"seci_service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const categoriesNS = "seci.categories"

func categoryDoc(id primitive.ObjectID, name string, active bool) bson.D {
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "description", Value: name + " issues"},
		{Key: "active", Value: active},
		{Key: "createdAt", Value: now},
		{Key: "updatedAt", Value: now},
	}
}

func TestMongoCategoryRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create", func(mt *mtest.T) {
		repo := repository.NewMongoCategoryRepository(mt.DB, testLogger())
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := repo.CreateCategory(ctx, &domain.Category{Name: "Infrastructure", Active: true})
		require.NoError(mt, err)
		assert.True(mt, primitive.IsValidObjectID(created.ID))
		assert.Equal(mt, "Infrastructure", created.Name)
		assert.False(mt, created.CreatedAt.IsZero())
	})

	mt.Run("create duplicate name", func(mt *mtest.T) {
		repo := repository.NewMongoCategoryRepository(mt.DB, testLogger())
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := repo.CreateCategory(ctx, &domain.Category{Name: "Infrastructure"})
		require.Error(mt, err)
		assert.True(mt, errors.Is(err, domain.ErrConflict))
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := repository.NewMongoCategoryRepository(mt.DB, testLogger())
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch, categoryDoc(id, "Roads", true)))

		got, err := repo.GetCategoryByID(ctx, id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), got.ID)
		assert.Equal(mt, "Roads", got.Name)
		assert.Equal(mt, "Roads issues", got.Description)
		assert.True(mt, got.Active)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := repository.NewMongoCategoryRepository(mt.DB, testLogger())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch))

		_, err := repo.GetCategoryByID(ctx, primitive.NewObjectID().Hex())
		assert.True(mt, errors.Is(err, domain.ErrNotFound))
	})

	mt.Run("malformed id is not found", func(mt *mtest.T) {
		repo := repository.NewMongoCategoryRepository(mt.DB, testLogger())

		_, err := repo.GetCategoryByID(ctx, "not-an-object-id")
		assert.True(mt, errors.Is(err, domain.ErrNotFound))
		assert.True(mt, errors.Is(repo.DeleteCategory(ctx, "xyz"), domain.ErrNotFound))
	})

	mt.Run("update", func(mt *mtest.T) {
		repo := repository.NewMongoCategoryRepository(mt.DB, testLogger())
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: categoryDoc(id, "Bridges", false)}))

		got, err := repo.UpdateCategory(ctx, &domain.Category{ID: id.Hex(), Name: "Bridges"})
		require.NoError(mt, err)
		assert.Equal(mt, "Bridges", got.Name)
		assert.False(mt, got.Active)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := repository.NewMongoCategoryRepository(mt.DB, testLogger())
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.UpdateCategory(ctx, &domain.Category{ID: primitive.NewObjectID().Hex(), Name: "Ghost"})
		assert.True(mt, errors.Is(err, domain.ErrNotFound))
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := repository.NewMongoCategoryRepository(mt.DB, testLogger())
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		id := primitive.NewObjectID().Hex()
		require.NoError(mt, repo.DeleteCategory(ctx, id))
		assert.True(mt, errors.Is(repo.DeleteCategory(ctx, id), domain.ErrNotFound))
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := repository.NewMongoCategoryRepository(mt.DB, testLogger())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch,
			categoryDoc(primitive.NewObjectID(), "Air", true),
			categoryDoc(primitive.NewObjectID(), "Water", false),
		))

		list, err := repo.ListCategories(ctx)
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		assert.Equal(mt, "Air", list[0].Name)
		assert.Equal(mt, "Water", list[1].Name)
	})

	mt.Run("page active", func(mt *mtest.T) {
		repo := repository.NewMongoCategoryRepository(mt.DB, testLogger())
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int64(3)}}),
			mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch, categoryDoc(primitive.NewObjectID(), "Water", true)),
		)

		page, total, err := repo.PageActiveCategories(ctx, 2, 2)
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), total)
		require.Len(mt, page, 1)
		assert.Equal(mt, "Water", page[0].Name)
	})

	mt.Run("page past end skips find", func(mt *mtest.T) {
		repo := repository.NewMongoCategoryRepository(mt.DB, testLogger())
		mt.AddMockResponses(mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int64(1)}}))

		page, total, err := repo.PageActiveCategories(ctx, 5, 5)
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), total)
		assert.Empty(mt, page)
	})
}

func TestMongoReportStats(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("merges object id and string references", func(mt *mtest.T) {
		stats := repository.NewMongoReportStats(mt.DB, "reports", "categoryId", testLogger())
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "seci.reports", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: oid}, {Key: "count", Value: int32(2)}},
			bson.D{{Key: "_id", Value: oid.Hex()}, {Key: "count", Value: int32(3)}},
			bson.D{{Key: "_id", Value: "legacy"}, {Key: "count", Value: int32(1)}},
		))

		got, err := stats.StatsForCategories(ctx, []string{oid.Hex(), "legacy", "unused"})
		require.NoError(mt, err)
		assert.Equal(mt, map[string]domain.CategoryStats{
			oid.Hex(): {ReportCount: 5},
			"legacy":  {ReportCount: 1},
		}, got)
	})

	mt.Run("no ids short circuits", func(mt *mtest.T) {
		stats := repository.NewMongoReportStats(mt.DB, "reports", "categoryId", testLogger())

		got, err := stats.StatsForCategories(ctx, nil)
		require.NoError(mt, err)
		assert.Empty(mt, got)
	})
}
