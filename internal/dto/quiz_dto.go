package dto

import (
	"time"

	"github.com/lshigami/classquiz/internal/model"
)

// NewID marks questions and options that should be created on update.
const NewID int64 = -1

type OptionInput struct {
	ID      int64  `json:"id"`
	Title   string `json:"title" binding:"required"`
	Correct *Flag  `json:"correct" binding:"required" swaggertype:"boolean"`
}

type QuestionInput struct {
	ID       int64         `json:"id"`
	Question string        `json:"question" binding:"required"`
	Options  []OptionInput `json:"options" binding:"omitempty,max=5,dive"`
}

// IsNew reports whether the question has to be inserted rather than updated.
func (q QuestionInput) IsNew() bool { return q.ID <= 0 }

func (o OptionInput) IsNew() bool { return o.ID <= 0 }

// QuizCreateRequest is sent as JSON or multipart. In multipart, Questions arrives as a
// JSON string in the "questions" field and question files as "questions[<i>][file]".
type QuizCreateRequest struct {
	Type      string          `json:"type" form:"type" binding:"required,oneof=quiz essay"`
	Title     string          `json:"title" form:"title" binding:"required,max=255"`
	Deadline  string          `json:"deadline" form:"deadline" binding:"required" example:"2026-12-31 23:59:00"`
	Questions []QuestionInput `json:"questions" form:"-" binding:"required,min=1,max=10,dive"`
}

type QuizUpdateRequest struct {
	Title     string          `json:"title" form:"title" binding:"required,max=255"`
	Deadline  string          `json:"deadline" form:"deadline" binding:"required" example:"2026-12-31 23:59:00"`
	Questions []QuestionInput `json:"questions" form:"-" binding:"omitempty,max=10,dive"`
}

type OptionResponse struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"question_id"`
	Title      string `json:"title"`
	Correct    *bool  `json:"correct,omitempty"`
}

type QuestionResponse struct {
	ID       uint             `json:"id"`
	QuizID   uint             `json:"quiz_id"`
	Question string           `json:"question"`
	File     *string          `json:"file"`
	Options  []OptionResponse `json:"options,omitempty"`
}

type QuizResponse struct {
	ID        uint               `json:"id"`
	UserID    uint               `json:"user_id"`
	Title     string             `json:"title"`
	Slug      string             `json:"slug"`
	Type      model.QuizType     `json:"type"`
	Deadline  time.Time          `json:"deadline"`
	Banner    *string            `json:"banner"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	User      *UserSummary       `json:"user,omitempty"`
	Questions []QuestionResponse `json:"questions,omitempty"`
}
