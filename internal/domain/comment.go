package domain

import (
	"encoding/json"
	"time"
)

type Comment struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	ReportID string    `json:"reportId"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
}

type CommentRequest struct {
	UserID   string `json:"userId" binding:"required" validate:"required"`
	ReportID string `json:"reportId" binding:"required" validate:"required"`
	Content  string `json:"content" binding:"required" validate:"required,min=1,max=2000"`
}

// CommentResponse is the read-only view of a comment. Fields are unexported so
// a value cannot change once built.
type CommentResponse struct {
	userID   string
	reportID string
	content  string
	date     time.Time
}

func NewCommentResponse(userID, reportID, content string, date time.Time) CommentResponse {
	return CommentResponse{
		userID:   userID,
		reportID: reportID,
		content:  content,
		date:     date,
	}
}

func CommentResponseFrom(c *Comment) CommentResponse {
	return NewCommentResponse(c.UserID, c.ReportID, c.Content, c.Date)
}

func (r CommentResponse) UserID() string   { return r.userID }
func (r CommentResponse) ReportID() string { return r.reportID }
func (r CommentResponse) Content() string  { return r.content }
func (r CommentResponse) Date() time.Time  { return r.date }

type commentResponseJSON struct {
	UserID   string    `json:"userId"`
	ReportID string    `json:"reportId"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
}

func (r CommentResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(commentResponseJSON{
		UserID:   r.userID,
		ReportID: r.reportID,
		Content:  r.content,
		Date:     r.date,
	})
}
