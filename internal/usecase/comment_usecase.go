package usecase

import (
	"context"
	"strings"
	"time"

	"seci_service/internal/domain"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type CommentUseCase interface {
	Create(ctx context.Context, req domain.CommentRequest) (*domain.CommentResponse, error)
	FindByReport(ctx context.Context, reportID string, page, size int) (*domain.Page[domain.CommentResponse], error)
	FindByUser(ctx context.Context, userID string) ([]domain.CommentResponse, error)
	FindByID(ctx context.Context, id string) (*domain.CommentResponse, error)
	DeleteByID(ctx context.Context, id string) error
}

type commentUseCase struct {
	commentRepo domain.CommentRepository
	now         func() time.Time
	log         *logrus.Logger
}

func NewCommentUseCase(repo domain.CommentRepository, logger *logrus.Logger) CommentUseCase {
	return NewCommentUseCaseWithClock(repo, time.Now, logger)
}

// NewCommentUseCaseWithClock lets callers fix the timestamp given to new comments.
func NewCommentUseCaseWithClock(repo domain.CommentRepository, now func() time.Time, logger *logrus.Logger) CommentUseCase {
	return &commentUseCase{
		commentRepo: repo,
		now:         now,
		log:         logger,
	}
}

func (uc *commentUseCase) Create(ctx context.Context, req domain.CommentRequest) (*domain.CommentResponse, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.ReportID = strings.TrimSpace(req.ReportID)
	req.Content = strings.TrimSpace(req.Content)
	if err := validateStruct(req); err != nil {
		uc.log.Warnf("Use Case: Rejected comment create request: %v", err)
		return nil, err
	}

	created, err := uc.commentRepo.CreateComment(ctx, &domain.Comment{
		UserID:   req.UserID,
		ReportID: req.ReportID,
		Content:  req.Content,
		Date:     uc.now().UTC().Truncate(time.Millisecond),
	})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create comment on report %s: %v", req.ReportID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Comment %s created on report %s by user %s", created.ID, created.ReportID, created.UserID)
	resp := domain.CommentResponseFrom(created)
	return &resp, nil
}

func (uc *commentUseCase) FindByReport(ctx context.Context, reportID string, page, size int) (*domain.Page[domain.CommentResponse], error) {
	if err := validatePage(page, size); err != nil {
		return nil, err
	}

	comments, total, err := uc.commentRepo.ListCommentsByReport(ctx, reportID, domain.Offset(page, size), size)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list comments for report %s: %v", reportID, err)
		return nil, errors.Wrap(err, "could not retrieve comments")
	}

	uc.log.Infof("Use Case: Retrieved %d comments for report %s", len(comments), reportID)
	return domain.NewPage(toCommentResponses(comments), page, size, total), nil
}

func (uc *commentUseCase) FindByUser(ctx context.Context, userID string) ([]domain.CommentResponse, error) {
	comments, err := uc.commentRepo.ListCommentsByUser(ctx, userID)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list comments for user %s: %v", userID, err)
		return nil, errors.Wrap(err, "could not retrieve comments")
	}

	uc.log.Infof("Use Case: Retrieved %d comments for user %s", len(comments), userID)
	return toCommentResponses(comments), nil
}

func (uc *commentUseCase) FindByID(ctx context.Context, id string) (*domain.CommentResponse, error) {
	comment, err := uc.commentRepo.GetCommentByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get comment ID %s: %v", id, err)
		return nil, err
	}

	resp := domain.CommentResponseFrom(comment)
	return &resp, nil
}

func (uc *commentUseCase) DeleteByID(ctx context.Context, id string) error {
	if err := uc.commentRepo.DeleteComment(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete comment ID %s: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Comment deleted successfully for ID %s", id)
	return nil
}

func toCommentResponses(comments []domain.Comment) []domain.CommentResponse {
	out := make([]domain.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, domain.CommentResponseFrom(&comments[i]))
	}
	return out
}
