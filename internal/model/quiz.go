package model

import (
	"time"

	"gorm.io/gorm"
)

// QuizType distinguishes auto-graded multiple choice quizzes from essays.
type QuizType string

const (
	QuizTypeQuiz  QuizType = "quiz"
	QuizTypeEssay QuizType = "essay"
)

type Quiz struct {
	ID        uint           `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID    uint       `gorm:"index;not null"`
	Title     string     `gorm:"type:varchar(255);not null"`
	Slug      string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Type      QuizType   `gorm:"type:varchar(16);index;not null"`
	Deadline  time.Time  `gorm:"not null"`
	Banner    *string    `gorm:"type:varchar(255)"`
	User      User       `gorm:"foreignKey:UserID"`
	Questions []Question `gorm:"foreignKey:QuizID"`
}

// Open reports whether answers are still accepted at now.
func (q *Quiz) Open(now time.Time) bool {
	return now.Before(q.Deadline)
}

type Question struct {
	ID        uint           `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	QuizID   uint     `gorm:"index;not null"`
	Question string   `gorm:"type:text;not null"`
	File     *string  `gorm:"type:varchar(255)"`
	Options  []Option `gorm:"foreignKey:QuestionID"`
}

type Option struct {
	ID        uint           `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	QuestionID uint   `gorm:"index;not null"`
	Title      string `gorm:"type:text;not null"`
	Correct    bool   `gorm:"not null;default:false"`
}
