package repository

import (
	"context"
	"database/sql"
	"fmt"

	"seci_service/internal/domain"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type postgresReportStats struct {
	db    *sql.DB
	query string
	log   *logrus.Logger
}

// NewPostgresReportStats counts rows of table grouped by column, which holds
// the referenced category id.
func NewPostgresReportStats(db *sql.DB, table, column string, logger *logrus.Logger) domain.CategoryStatsProvider {
	col := pq.QuoteIdentifier(column)
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM %s WHERE %s = ANY($1) GROUP BY %s`,
		col, pq.QuoteIdentifier(table), col, col)
	return &postgresReportStats{
		db:    db,
		query: query,
		log:   logger,
	}
}

func (s *postgresReportStats) StatsForCategories(ctx context.Context, ids []string) (map[string]domain.CategoryStats, error) {
	result := make(map[string]domain.CategoryStats, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := s.db.QueryContext(ctx, s.query, pq.Array(ids))
	if err != nil {
		s.log.Errorf("Failed to query report stats: %v", err)
		return nil, errors.Wrap(err, "could not query category stats")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    string
			count int64
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, errors.Wrap(err, "could not scan category stats row")
		}
		result[id] = domain.CategoryStats{ReportCount: count}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating category stats")
	}
	return result, nil
}
