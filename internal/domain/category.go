package domain

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryRequest is the caller supplied shape for save and update.
// Active defaults to true when omitted.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
	Active      *bool  `json:"active"`
}

func (r CategoryRequest) IsActive() bool {
	if r.Active == nil {
		return true
	}
	return *r.Active
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// CategoryStats holds figures computed outside this service for a category.
type CategoryStats struct {
	ReportCount int64 `json:"reportCount"`
}

type CategoryWithStatsResponse struct {
	CategoryResponse
	Stats CategoryStats `json:"stats"`
}

func NewCategoryResponse(c *Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
	}
}
