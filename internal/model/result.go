package model

import "time"

// PointsPerCorrectAnswer is awarded for every correctly answered multiple choice question.
const PointsPerCorrectAnswer = 10

// Result is one user's attempt at one quiz. Score stays nil for essays until a teacher grades it.
type Result struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID        uint          `gorm:"uniqueIndex:idx_results_user_quiz;not null"`
	QuizID        uint          `gorm:"uniqueIndex:idx_results_user_quiz;index;not null"`
	Score         *float64
	User          User          `gorm:"foreignKey:UserID"`
	Quiz          Quiz          `gorm:"foreignKey:QuizID"`
	ResultQuizzes []ResultQuiz  `gorm:"foreignKey:ResultID"`
	ResultEssays  []ResultEssay `gorm:"foreignKey:ResultID"`
}

type ResultQuiz struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ResultID   uint     `gorm:"index;not null"`
	QuestionID uint     `gorm:"index;not null"`
	OptionID   *uint    `gorm:"index"`
	Correct    bool     `gorm:"not null;default:false"`
	Question   Question `gorm:"foreignKey:QuestionID"`
	Option     *Option  `gorm:"foreignKey:OptionID"`
}

// ResultEssay is one essay answer; a question is answered at most once per result.
type ResultEssay struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ResultID   uint     `gorm:"uniqueIndex:idx_result_essays_result_question;not null"`
	QuestionID uint     `gorm:"uniqueIndex:idx_result_essays_result_question;index;not null"`
	Comment    *string  `gorm:"type:text"`
	File       *string  `gorm:"type:varchar(255)"`
	AIFeedback *string  `gorm:"type:text"`
	Question   Question `gorm:"foreignKey:QuestionID"`
}
