package delivery

import (
	"net/http"

	"seci_service/internal/domain"
	"seci_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CommentHandler struct {
	useCase usecase.CommentUseCase
	log     *logrus.Logger
}

func NewCommentHandler(uc usecase.CommentUseCase, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CommentHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/comments", h.Create)
	router.GET("/comments/:id", h.FindByID)
	router.DELETE("/comments/:id", h.DeleteByID)
	router.GET("/reports/:id/comments", h.FindByReport)
	router.GET("/users/:id/comments", h.FindByUser)
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req domain.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create comment: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.useCase.Create(c.Request.Context(), req)
	if err != nil {
		h.log.Errorf("Failed to create comment on report %s: %v", req.ReportID, err)
		ErrorResponse(c, mapErrorToStatus(err), publicMessage("Failed to create comment", err))
		return
	}

	SuccessResponse(c, http.StatusCreated, "Comment created successfully", created)
}

func (h *CommentHandler) FindByReport(c *gin.Context) {
	reportID := c.Param("id")
	page, size, ok := pageParams(c, defaultPageSize)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	result, err := h.useCase.FindByReport(c.Request.Context(), reportID, page, size)
	if err != nil {
		h.log.Errorf("Failed to list comments for report %s: %v", reportID, err)
		ErrorResponse(c, mapErrorToStatus(err), publicMessage("Failed to retrieve comments", err))
		return
	}

	SuccessResponse(c, http.StatusOK, "Comments retrieved successfully", result)
}

func (h *CommentHandler) FindByUser(c *gin.Context) {
	userID := c.Param("id")

	comments, err := h.useCase.FindByUser(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorf("Failed to list comments for user %s: %v", userID, err)
		ErrorResponse(c, mapErrorToStatus(err), publicMessage("Failed to retrieve comments", err))
		return
	}

	SuccessResponse(c, http.StatusOK, "Comments retrieved successfully", comments)
}

func (h *CommentHandler) FindByID(c *gin.Context) {
	id := c.Param("id")

	comment, err := h.useCase.FindByID(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get comment by ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), publicMessage("Failed to retrieve comment", err))
		return
	}

	SuccessResponse(c, http.StatusOK, "Comment retrieved successfully", comment)
}

func (h *CommentHandler) DeleteByID(c *gin.Context) {
	id := c.Param("id")

	if err := h.useCase.DeleteByID(c.Request.Context(), id); err != nil {
		h.log.Warnf("Failed to delete comment ID %s: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), publicMessage("Failed to delete comment", err))
		return
	}

	SuccessResponse(c, http.StatusOK, "Comment deleted successfully", nil)
}
