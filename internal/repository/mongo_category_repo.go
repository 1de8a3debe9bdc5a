package repository

import (
	"context"
	"time"

	"seci_service/internal/domain"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const categoriesCollection = "categories"

type categoryDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Active      bool               `bson:"active"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *categoryDocument) toDomain() domain.Category {
	return domain.Category{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// listing order shared by every category query
var categorySort = bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}

type mongoCategoryRepository struct {
	coll *mongo.Collection
	log  *logrus.Logger
}

func NewMongoCategoryRepository(db *mongo.Database, logger *logrus.Logger) domain.CategoryRepository {
	return &mongoCategoryRepository{
		coll: db.Collection(categoriesCollection),
		log:  logger,
	}
}

// EnsureCategoryIndexes creates the unique index backing the name constraint.
func EnsureCategoryIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(categoriesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_category_name"),
	})
	if err != nil {
		return errors.Wrap(err, "could not create category indexes")
	}
	return nil
}

func (r *mongoCategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	now := time.Now().UTC()
	doc := categoryDocument{
		ID:          primitive.NewObjectID(),
		Name:        category.Name,
		Description: category.Description,
		Active:      category.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.log.Warnf("Attempted to create category with duplicate name: %s", category.Name)
			return nil, errors.Wrapf(domain.ErrConflict, "category with name '%s'", category.Name)
		}
		r.log.Errorf("Failed to create category '%s': %v", category.Name, err)
		return nil, errors.Wrap(err, "could not create category")
	}

	created := doc.toDomain()
	r.log.Infof("Category created successfully with ID: %s, Name: %s", created.ID, created.Name)
	return &created, nil
}

func (r *mongoCategoryRepository) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		r.log.Warnf("Category ID %q is not a valid object id", id)
		return nil, errors.Wrapf(domain.ErrNotFound, "category with id %s", id)
	}

	var doc categoryDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.log.Warnf("Category with ID %s not found", id)
			return nil, errors.Wrapf(domain.ErrNotFound, "category with id %s", id)
		}
		r.log.Errorf("Failed to get category by ID %s: %v", id, err)
		return nil, errors.Wrap(err, "could not get category by id")
	}

	category := doc.toDomain()
	r.log.Infof("Category retrieved successfully with ID: %s", id)
	return &category, nil
}

func (r *mongoCategoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	oid, err := primitive.ObjectIDFromHex(category.ID)
	if err != nil {
		r.log.Warnf("Category ID %q is not a valid object id", category.ID)
		return nil, errors.Wrapf(domain.ErrNotFound, "category with id %s", category.ID)
	}

	update := bson.M{"$set": bson.M{
		"name":        category.Name,
		"description": category.Description,
		"active":      category.Active,
		"updatedAt":   time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc categoryDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.log.Warnf("Attempted to update category ID %s with duplicate name: %s", category.ID, category.Name)
			return nil, errors.Wrapf(domain.ErrConflict, "category with name '%s'", category.Name)
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.log.Warnf("Category with ID %s not found for update", category.ID)
			return nil, errors.Wrapf(domain.ErrNotFound, "category with id %s", category.ID)
		}
		r.log.Errorf("Failed to update category ID %s: %v", category.ID, err)
		return nil, errors.Wrap(err, "could not update category")
	}

	updated := doc.toDomain()
	r.log.Infof("Category updated successfully with ID: %s", updated.ID)
	return &updated, nil
}

func (r *mongoCategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		r.log.Warnf("Category ID %q is not a valid object id", id)
		return errors.Wrapf(domain.ErrNotFound, "category with id %s", id)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.log.Errorf("Failed to delete category ID %s: %v", id, err)
		return errors.Wrap(err, "could not delete category")
	}
	if res.DeletedCount == 0 {
		r.log.Warnf("Attempted to delete non-existent category ID %s", id)
		return errors.Wrapf(domain.ErrNotFound, "category with id %s", id)
	}

	r.log.Infof("Category deleted successfully with ID: %s", id)
	return nil
}

func (r *mongoCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := r.find(ctx, bson.M{}, options.Find().SetSort(categorySort))
	if err != nil {
		r.log.Errorf("Failed to list categories: %v", err)
		return nil, errors.Wrap(err, "could not list categories")
	}
	r.log.Infof("Retrieved %d categories", len(categories))
	return categories, nil
}

func (r *mongoCategoryRepository) ListActiveCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := r.find(ctx, bson.M{"active": true}, options.Find().SetSort(categorySort))
	if err != nil {
		r.log.Errorf("Failed to list active categories: %v", err)
		return nil, errors.Wrap(err, "could not list active categories")
	}
	r.log.Infof("Retrieved %d active categories", len(categories))
	return categories, nil
}

func (r *mongoCategoryRepository) PageActiveCategories(ctx context.Context, offset int64, limit int) ([]domain.Category, int64, error) {
	filter := bson.M{"active": true}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		r.log.Errorf("Failed to count active categories: %v", err)
		return nil, 0, errors.Wrap(err, "could not count active categories")
	}
	if total == 0 || offset >= total {
		return []domain.Category{}, total, nil
	}

	opts := options.Find().SetSort(categorySort).SetSkip(offset).SetLimit(int64(limit))
	categories, err := r.find(ctx, filter, opts)
	if err != nil {
		r.log.Errorf("Failed to page active categories (offset %d, limit %d): %v", offset, limit, err)
		return nil, 0, errors.Wrap(err, "could not page active categories")
	}

	r.log.Infof("Retrieved %d of %d active categories at offset %d", len(categories), total, offset)
	return categories, total, nil
}

func (r *mongoCategoryRepository) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]domain.Category, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(docs))
	for i := range docs {
		categories = append(categories, docs[i].toDomain())
	}
	return categories, nil
}
