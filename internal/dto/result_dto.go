package dto

import (
	"encoding/json"
	"time"
)

// AnswerOption is one option of a submitted question group. Only Selected is trusted;
// any echoed "correct" value is ignored and re-read from the database.
type AnswerOption struct {
	ID         uint  `json:"id"`
	QuestionID uint  `json:"question_id"`
	Selected   *Flag `json:"selected,omitempty" swaggertype:"integer"`
}

// AnswerGroup is one question with its options as the client displayed them.
type AnswerGroup struct {
	ID      uint           `json:"id"`
	Options []AnswerOption `json:"options"`
}

// QuestionID falls back to the options' question_id when the group carries no id.
func (g AnswerGroup) QuestionID() uint {
	if g.ID != 0 {
		return g.ID
	}
	for _, o := range g.Options {
		if o.QuestionID != 0 {
			return o.QuestionID
		}
	}
	return 0
}

// SubmitQuizRequest carries the answer groups either as a JSON array or as a string holding one.
type SubmitQuizRequest struct {
	Data json.RawMessage `json:"data" swaggertype:"string" example:"[{\"id\":1,\"options\":[{\"id\":3,\"selected\":1}]}]"`
}

type SubmitEssayRequest struct {
	QuestionID uint    `json:"question_id" form:"question_id" binding:"required"`
	Comment    *string `json:"comment" form:"comment"`
}

type ScoreRequest struct {
	Score *float64 `json:"score" form:"score" binding:"required"`
}

type ResultQuizResponse struct {
	ID         uint              `json:"id"`
	ResultID   uint              `json:"result_id"`
	QuestionID uint              `json:"question_id"`
	OptionID   *uint             `json:"option_id"`
	Correct    bool              `json:"correct"`
	Question   *QuestionResponse `json:"question,omitempty"`
	Option     *OptionResponse   `json:"option,omitempty"`
}

type ResultEssayResponse struct {
	ID         uint              `json:"id"`
	ResultID   uint              `json:"result_id"`
	QuestionID uint              `json:"question_id"`
	Comment    *string           `json:"comment"`
	File       *string           `json:"file"`
	AIFeedback *string           `json:"ai_feedback"`
	Question   *QuestionResponse `json:"question,omitempty"`
}

type ResultResponse struct {
	ID            uint                  `json:"id"`
	UserID        uint                  `json:"user_id"`
	QuizID        uint                  `json:"quiz_id"`
	Score         *float64              `json:"score"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	Quiz          *QuizResponse         `json:"quiz,omitempty"`
	ResultQuizzes []ResultQuizResponse  `json:"result_quizzes,omitempty"`
	ResultEssays  []ResultEssayResponse `json:"result_essays,omitempty"`
}

// StudentResultResponse is a roster row with the student's result for one quiz.
type StudentResultResponse struct {
	ID     uint            `json:"id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Avatar *string         `json:"avatar"`
	Number *int64          `json:"number"`
	Result *ResultResponse `json:"result"`
}
