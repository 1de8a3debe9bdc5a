package domain

import "context"

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *Category) (*Category, error)
	GetCategoryByID(ctx context.Context, id string) (*Category, error)
	UpdateCategory(ctx context.Context, category *Category) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]Category, error)
	ListActiveCategories(ctx context.Context) ([]Category, error)
	// PageActiveCategories returns the active categories in listing order
	// starting at offset, plus the total number of active categories.
	PageActiveCategories(ctx context.Context, offset int64, limit int) ([]Category, int64, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *Comment) (*Comment, error)
	GetCommentByID(ctx context.Context, id string) (*Comment, error)
	DeleteComment(ctx context.Context, id string) error
	ListCommentsByReport(ctx context.Context, reportID string, offset int64, limit int) ([]Comment, int64, error)
	ListCommentsByUser(ctx context.Context, userID string) ([]Comment, error)
}

// CategoryStatsProvider supplies per-category statistics. Ids it has no
// figures for may be left out of the result.
type CategoryStatsProvider interface {
	StatsForCategories(ctx context.Context, ids []string) (map[string]CategoryStats, error)
}
