package usecase

import (
	"context"
	"strings"

	"seci_service/internal/domain"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CategoryUseCase is the category management contract consumed by the HTTP
// and gRPC handlers.
type CategoryUseCase interface {
	Save(ctx context.Context, req domain.CategoryRequest) (*domain.CategoryResponse, error)
	Update(ctx context.Context, id string, req domain.CategoryRequest) (*domain.CategoryResponse, error)
	FindAll(ctx context.Context) ([]domain.CategoryResponse, error)
	FindByID(ctx context.Context, id string) (*domain.CategoryResponse, error)
	DeleteByID(ctx context.Context, id string) error
	FindAllActive(ctx context.Context) ([]domain.CategoryResponse, error)
	FindAllWithStats(ctx context.Context, page, size int) (*domain.Page[domain.CategoryWithStatsResponse], error)
}

type categoryUseCase struct {
	categoryRepo domain.CategoryRepository
	stats        domain.CategoryStatsProvider
	log          *logrus.Logger
}

func NewCategoryUseCase(repo domain.CategoryRepository, stats domain.CategoryStatsProvider, logger *logrus.Logger) CategoryUseCase {
	return &categoryUseCase{
		categoryRepo: repo,
		stats:        stats,
		log:          logger,
	}
}

func normalize(req domain.CategoryRequest) domain.CategoryRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	return req
}

func (uc *categoryUseCase) Save(ctx context.Context, req domain.CategoryRequest) (*domain.CategoryResponse, error) {
	req = normalize(req)
	if err := validateStruct(req); err != nil {
		uc.log.Warnf("Use Case: Rejected category create request: %v", err)
		return nil, err
	}

	uc.log.Infof("Use Case: Attempting to create category with name '%s'", req.Name)
	created, err := uc.categoryRepo.CreateCategory(ctx, &domain.Category{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.IsActive(),
	})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create category '%s': %v", req.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category '%s' created successfully with ID %s", created.Name, created.ID)
	resp := domain.NewCategoryResponse(created)
	return &resp, nil
}

func (uc *categoryUseCase) Update(ctx context.Context, id string, req domain.CategoryRequest) (*domain.CategoryResponse, error) {
	req = normalize(req)
	if err := validateStruct(req); err != nil {
		uc.log.Warnf("Use Case: Rejected update for category ID %s: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Attempting to update category ID %s", id)
	updated, err := uc.categoryRepo.UpdateCategory(ctx, &domain.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Active:      req.IsActive(),
	})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update category ID %s: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category updated successfully for ID %s", updated.ID)
	resp := domain.NewCategoryResponse(updated)
	return &resp, nil
}

func (uc *categoryUseCase) FindAll(ctx context.Context) ([]domain.CategoryResponse, error) {
	uc.log.Info("Use Case: Attempting to list all categories")

	categories, err := uc.categoryRepo.ListCategories(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return nil, errors.Wrap(err, "could not retrieve categories")
	}

	uc.log.Infof("Use Case: Retrieved %d categories", len(categories))
	return toResponses(categories), nil
}

func (uc *categoryUseCase) FindByID(ctx context.Context, id string) (*domain.CategoryResponse, error) {
	uc.log.Infof("Use Case: Attempting to get category with ID %s", id)
	category, err := uc.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get category ID %s: %v", id, err)
		return nil, err
	}

	resp := domain.NewCategoryResponse(category)
	return &resp, nil
}

func (uc *categoryUseCase) DeleteByID(ctx context.Context, id string) error {
	uc.log.Infof("Use Case: Attempting to delete category ID %s", id)
	if err := uc.categoryRepo.DeleteCategory(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete category ID %s: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Category deleted successfully for ID %s", id)
	return nil
}

func (uc *categoryUseCase) FindAllActive(ctx context.Context) ([]domain.CategoryResponse, error) {
	uc.log.Info("Use Case: Attempting to list active categories")

	categories, err := uc.categoryRepo.ListActiveCategories(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list active categories: %v", err)
		return nil, errors.Wrap(err, "could not retrieve active categories")
	}

	uc.log.Infof("Use Case: Retrieved %d active categories", len(categories))
	return toResponses(categories), nil
}

func (uc *categoryUseCase) FindAllWithStats(ctx context.Context, page, size int) (*domain.Page[domain.CategoryWithStatsResponse], error) {
	if err := validatePage(page, size); err != nil {
		uc.log.Warnf("Use Case: Rejected stats page request: %v", err)
		return nil, err
	}

	uc.log.Infof("Use Case: Attempting to list categories with stats, page %d size %d", page, size)
	categories, total, err := uc.categoryRepo.PageActiveCategories(ctx, domain.Offset(page, size), size)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to page active categories: %v", err)
		return nil, errors.Wrap(err, "could not retrieve categories")
	}

	ids := make([]string, 0, len(categories))
	for i := range categories {
		ids = append(ids, categories[i].ID)
	}
	stats, err := uc.stats.StatsForCategories(ctx, ids)
	if err != nil {
		uc.log.Errorf("Use Case: Stats provider failed for %d categories: %v", len(ids), err)
		return nil, errors.Wrap(err, "could not retrieve category stats")
	}

	items := make([]domain.CategoryWithStatsResponse, 0, len(categories))
	for i := range categories {
		items = append(items, domain.CategoryWithStatsResponse{
			CategoryResponse: domain.NewCategoryResponse(&categories[i]),
			Stats:            stats[categories[i].ID],
		})
	}

	uc.log.Infof("Use Case: Retrieved %d categories with stats (total %d)", len(items), total)
	return domain.NewPage(items, page, size, total), nil
}

func toResponses(categories []domain.Category) []domain.CategoryResponse {
	out := make([]domain.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, domain.NewCategoryResponse(&categories[i]))
	}
	return out
}
