package service

import (
	"fmt"

	"github.com/lshigami/classquiz/internal/dto"
	"github.com/lshigami/classquiz/internal/model"
)

// OptionResolver reads the stored option, including its correct flag.
type OptionResolver interface {
	FindOptionForQuestion(questionID, optionID uint) (*model.Option, error)
}

// Grade is the outcome of grading one multiple choice submission.
type Grade struct {
	Rows    []model.ResultQuiz
	Correct int
	Score   float64
}

// GradingEngine turns answer groups into per-question rows and a score.
type GradingEngine interface {
	Grade(questions []model.Question, groups []dto.AnswerGroup, options OptionResolver) (*Grade, error)
}

type gradingEngine struct {
	pointsPerCorrect int
}

func NewGradingEngine() GradingEngine {
	return &gradingEngine{pointsPerCorrect: model.PointsPerCorrectAnswer}
}

// Grade scans each group's options in order and takes the first selected one as the answer.
// Correctness always comes from options, never from the submitted payload. A group without
// a selected option, and any quiz question missing from groups, yields an unanswered row.
// Any resolver error aborts grading so the caller can roll back.
func (e *gradingEngine) Grade(questions []model.Question, groups []dto.AnswerGroup, options OptionResolver) (*Grade, error) {
	grade := &Grade{Rows: make([]model.ResultQuiz, 0, len(questions))}
	seen := make(map[uint]bool, len(groups))

	for _, group := range groups {
		questionID := group.QuestionID()
		row := model.ResultQuiz{QuestionID: questionID}
		for _, opt := range group.Options {
			if !opt.Selected.IsSet() {
				continue
			}
			stored, err := options.FindOptionForQuestion(questionID, opt.ID)
			if err != nil {
				return nil, fmt.Errorf("resolve option %d of question %d: %w", opt.ID, questionID, err)
			}
			optionID := stored.ID
			row.OptionID = &optionID
			row.Correct = stored.Correct
			break
		}
		if row.Correct {
			grade.Correct++
		}
		seen[questionID] = true
		grade.Rows = append(grade.Rows, row)
	}

	for _, q := range questions {
		if !seen[q.ID] {
			grade.Rows = append(grade.Rows, model.ResultQuiz{QuestionID: q.ID})
		}
	}

	grade.Score = float64(grade.Correct * e.pointsPerCorrect)
	return grade, nil
}
