package repository

import (
	"context"

	"seci_service/internal/domain"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoReportStats counts documents of a report collection that reference
// a category through field. References stored either as ObjectID or as hex
// string are both counted.
type mongoReportStats struct {
	coll  *mongo.Collection
	field string
	log   *logrus.Logger
}

func NewMongoReportStats(db *mongo.Database, collection, field string, logger *logrus.Logger) domain.CategoryStatsProvider {
	return &mongoReportStats{
		coll:  db.Collection(collection),
		field: field,
		log:   logger,
	}
}

type statsBucket struct {
	ID    interface{} `bson:"_id"`
	Count int64       `bson:"count"`
}

func (s *mongoReportStats) StatsForCategories(ctx context.Context, ids []string) (map[string]domain.CategoryStats, error) {
	result := make(map[string]domain.CategoryStats, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	refs := make(bson.A, 0, len(ids)*2)
	for _, id := range ids {
		refs = append(refs, id)
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			refs = append(refs, oid)
		}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: s.field, Value: bson.D{{Key: "$in", Value: refs}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + s.field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		s.log.Errorf("Failed to aggregate report stats: %v", err)
		return nil, errors.Wrap(err, "could not aggregate category stats")
	}
	defer cursor.Close(ctx)

	var buckets []statsBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		s.log.Errorf("Failed to decode report stats: %v", err)
		return nil, errors.Wrap(err, "could not decode category stats")
	}

	for _, b := range buckets {
		var key string
		switch v := b.ID.(type) {
		case primitive.ObjectID:
			key = v.Hex()
		case string:
			key = v
		default:
			continue
		}
		st := result[key]
		st.ReportCount += b.Count
		result[key] = st
	}

	s.log.Debugf("Computed report stats for %d of %d categories", len(result), len(ids))
	return result, nil
}
