package delivery

import (
	"net/http"

	"seci_service/internal/domain"
	"seci_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const defaultPageSize = 10

type CategoryHandler struct {
	useCase usecase.CategoryUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(uc usecase.CategoryUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categories")
	{
		categories.POST("", h.Save)
		categories.GET("", h.FindAll)
		categories.GET("/active", h.FindAllActive)
		categories.GET("/stats", h.FindAllWithStats)
		categories.GET("/:id", h.FindByID)
		categories.PUT("/:id", h.Update)
		categories.DELETE("/:id", h.DeleteByID)
	}
}

func (h *CategoryHandler) Save(c *gin.Context) {
	var req domain.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create category: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.useCase.Save(c.Request.Context(), req)
	if err != nil {
		h.log.Errorf("Failed to create category '%s': %v", req.Name, err)
		ErrorResponse(c, mapErrorToStatus(err), publicMessage("Failed to create category", err))
		return
	}

	h.log.Infof("Category created successfully: ID %s, Name %s", created.ID, created.Name)
	SuccessResponse(c, http.StatusCreated, "Category created successfully", created)
}

func (h *CategoryHandler) FindByID(c *gin.Context) {
	id := c.Param("id")

	category, err := h.useCase.FindByID(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get category by ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), publicMessage("Failed to retrieve category", err))
		return
	}

	SuccessResponse(c, http.StatusOK, "Category retrieved successfully", category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req domain.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for update category ID %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, err := h.useCase.Update(c.Request.Context(), id, req)
	if err != nil {
		h.log.Errorf("Failed to update category ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), publicMessage("Failed to update category", err))
		return
	}

	h.log.Infof("Category updated successfully: ID %s", updated.ID)
	SuccessResponse(c, http.StatusOK, "Category updated successfully", updated)
}

func (h *CategoryHandler) DeleteByID(c *gin.Context) {
	id := c.Param("id")

	if err := h.useCase.DeleteByID(c.Request.Context(), id); err != nil {
		h.log.Warnf("Failed to delete category ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), publicMessage("Failed to delete category", err))
		return
	}

	h.log.Infof("Category deleted successfully: ID %s", id)
	SuccessResponse(c, http.StatusOK, "Category deleted successfully", nil)
}

func (h *CategoryHandler) FindAll(c *gin.Context) {
	categories, err := h.useCase.FindAll(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list categories: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, publicMessage("Failed to retrieve categories", err))
		return
	}

	if len(categories) == 0 {
		SuccessResponse(c, http.StatusOK, "No categories found", []domain.CategoryResponse{})
		return
	}
	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", categories)
}

func (h *CategoryHandler) FindAllActive(c *gin.Context) {
	categories, err := h.useCase.FindAllActive(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list active categories: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, publicMessage("Failed to retrieve categories", err))
		return
	}

	if len(categories) == 0 {
		SuccessResponse(c, http.StatusOK, "No active categories found", []domain.CategoryResponse{})
		return
	}
	SuccessResponse(c, http.StatusOK, "Active categories retrieved successfully", categories)
}

func (h *CategoryHandler) FindAllWithStats(c *gin.Context) {
	page, size, ok := pageParams(c, defaultPageSize)
	if !ok {
		h.log.Warnf("Invalid pagination parameters: page=%q size=%q", c.Query("page"), c.Query("size"))
		ErrorResponse(c, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	result, err := h.useCase.FindAllWithStats(c.Request.Context(), page, size)
	if err != nil {
		h.log.Errorf("Failed to list categories with stats: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), publicMessage("Failed to retrieve categories", err))
		return
	}

	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", result)
}
