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

const commentsCollection = "comments"

type commentDocument struct {
	ID       primitive.ObjectID `bson:"_id"`
	UserID   string             `bson:"userId"`
	ReportID string             `bson:"reportId"`
	Content  string             `bson:"content"`
	Date     time.Time          `bson:"date"`
}

func (d *commentDocument) toDomain() domain.Comment {
	return domain.Comment{
		ID:       d.ID.Hex(),
		UserID:   d.UserID,
		ReportID: d.ReportID,
		Content:  d.Content,
		Date:     d.Date,
	}
}

// newest first
var commentSort = bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}

type mongoCommentRepository struct {
	coll *mongo.Collection
	log  *logrus.Logger
}

func NewMongoCommentRepository(db *mongo.Database, logger *logrus.Logger) domain.CommentRepository {
	return &mongoCommentRepository{
		coll: db.Collection(commentsCollection),
		log:  logger,
	}
}

func EnsureCommentIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(commentsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "reportId", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
	})
	if err != nil {
		return errors.Wrap(err, "could not create comment indexes")
	}
	return nil
}

func (r *mongoCommentRepository) CreateComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	doc := commentDocument{
		ID:       primitive.NewObjectID(),
		UserID:   comment.UserID,
		ReportID: comment.ReportID,
		Content:  comment.Content,
		Date:     comment.Date,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.log.Errorf("Failed to create comment for report %s: %v", comment.ReportID, err)
		return nil, errors.Wrap(err, "could not create comment")
	}

	created := doc.toDomain()
	r.log.Infof("Comment created successfully with ID: %s, Report: %s", created.ID, created.ReportID)
	return &created, nil
}

func (r *mongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.Wrapf(domain.ErrNotFound, "comment with id %s", id)
	}

	var doc commentDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.log.Warnf("Comment with ID %s not found", id)
			return nil, errors.Wrapf(domain.ErrNotFound, "comment with id %s", id)
		}
		r.log.Errorf("Failed to get comment by ID %s: %v", id, err)
		return nil, errors.Wrap(err, "could not get comment by id")
	}

	comment := doc.toDomain()
	return &comment, nil
}

func (r *mongoCommentRepository) DeleteComment(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.Wrapf(domain.ErrNotFound, "comment with id %s", id)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.log.Errorf("Failed to delete comment ID %s: %v", id, err)
		return errors.Wrap(err, "could not delete comment")
	}
	if res.DeletedCount == 0 {
		r.log.Warnf("Attempted to delete non-existent comment ID %s", id)
		return errors.Wrapf(domain.ErrNotFound, "comment with id %s", id)
	}

	r.log.Infof("Comment deleted successfully with ID: %s", id)
	return nil
}

func (r *mongoCommentRepository) ListCommentsByReport(ctx context.Context, reportID string, offset int64, limit int) ([]domain.Comment, int64, error) {
	filter := bson.M{"reportId": reportID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		r.log.Errorf("Failed to count comments for report %s: %v", reportID, err)
		return nil, 0, errors.Wrap(err, "could not count comments")
	}
	if total == 0 || offset >= total {
		return []domain.Comment{}, total, nil
	}

	opts := options.Find().SetSort(commentSort).SetSkip(offset).SetLimit(int64(limit))
	comments, err := r.find(ctx, filter, opts)
	if err != nil {
		r.log.Errorf("Failed to list comments for report %s: %v", reportID, err)
		return nil, 0, errors.Wrap(err, "could not list comments")
	}
	return comments, total, nil
}

func (r *mongoCommentRepository) ListCommentsByUser(ctx context.Context, userID string) ([]domain.Comment, error) {
	comments, err := r.find(ctx, bson.M{"userId": userID}, options.Find().SetSort(commentSort))
	if err != nil {
		r.log.Errorf("Failed to list comments for user %s: %v", userID, err)
		return nil, errors.Wrap(err, "could not list comments")
	}
	return comments, nil
}

func (r *mongoCommentRepository) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]domain.Comment, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []commentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(docs))
	for i := range docs {
		comments = append(comments, docs[i].toDomain())
	}
	return comments, nil
}
