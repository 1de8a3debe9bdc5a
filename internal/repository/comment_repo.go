package repository

import (
	"context"
	"database/sql"

	"seci_service/internal/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const commentColumns = `id, user_id, report_id, content, date`

type postgresCommentRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCommentRepository(db *sql.DB, logger *logrus.Logger) domain.CommentRepository {
	return &postgresCommentRepository{
		db:  db,
		log: logger,
	}
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	comment := &domain.Comment{}
	if err := row.Scan(&comment.ID, &comment.UserID, &comment.ReportID, &comment.Content, &comment.Date); err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *postgresCommentRepository) CreateComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	query := `INSERT INTO comments (id, user_id, report_id, content, date)
        VALUES ($1, $2, $3, $4, $5) RETURNING ` + commentColumns
	created, err := scanComment(r.db.QueryRowContext(ctx, query,
		uuid.NewString(), comment.UserID, comment.ReportID, comment.Content, comment.Date))
	if err != nil {
		r.log.Errorf("Failed to create comment for report %s: %v", comment.ReportID, err)
		return nil, errors.Wrap(err, "could not create comment")
	}
	r.log.Infof("Comment created successfully with ID: %s, Report: %s", created.ID, created.ReportID)
	return created, nil
}

func (r *postgresCommentRepository) GetCommentByID(ctx context.Context, id string) (*domain.Comment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.Wrapf(domain.ErrNotFound, "comment with id %s", id)
	}

	comment, err := scanComment(r.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Comment with ID %s not found", id)
			return nil, errors.Wrapf(domain.ErrNotFound, "comment with id %s", id)
		}
		r.log.Errorf("Failed to get comment by ID %s: %v", id, err)
		return nil, errors.Wrap(err, "could not get comment by id")
	}
	return comment, nil
}

func (r *postgresCommentRepository) DeleteComment(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrapf(domain.ErrNotFound, "comment with id %s", id)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Failed to delete comment ID %s: %v", id, err)
		return errors.Wrap(err, "could not delete comment")
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "could not confirm comment deletion")
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent comment ID %s", id)
		return errors.Wrapf(domain.ErrNotFound, "comment with id %s", id)
	}

	r.log.Infof("Comment deleted successfully with ID: %s", id)
	return nil
}

func (r *postgresCommentRepository) ListCommentsByReport(ctx context.Context, reportID string, offset int64, limit int) ([]domain.Comment, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE report_id = $1`, reportID).Scan(&total); err != nil {
		r.log.Errorf("Failed to count comments for report %s: %v", reportID, err)
		return nil, 0, errors.Wrap(err, "could not count comments")
	}
	if total == 0 || offset >= total {
		return []domain.Comment{}, total, nil
	}

	query := `SELECT ` + commentColumns + ` FROM comments WHERE report_id = $1
        ORDER BY date DESC, id DESC LIMIT $2 OFFSET $3`
	comments, err := r.query(ctx, query, reportID, limit, offset)
	if err != nil {
		r.log.Errorf("Failed to list comments for report %s: %v", reportID, err)
		return nil, 0, errors.Wrap(err, "could not list comments")
	}
	return comments, total, nil
}

func (r *postgresCommentRepository) ListCommentsByUser(ctx context.Context, userID string) ([]domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE user_id = $1 ORDER BY date DESC, id DESC`
	comments, err := r.query(ctx, query, userID)
	if err != nil {
		r.log.Errorf("Failed to list comments for user %s: %v", userID, err)
		return nil, errors.Wrap(err, "could not list comments")
	}
	return comments, nil
}

func (r *postgresCommentRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, errors.Wrap(err, "could not scan comment row")
		}
		comments = append(comments, *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating comments")
	}
	return comments, nil
}
