package repository

import (
	"github.com/lshigami/classquiz/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	WithTx(tx *gorm.DB) QuestionRepository
	FindByID(id uint) (*model.Question, error)
	FindByIDForQuiz(quizID, id uint) (*model.Question, error)
	Create(question *model.Question) error
	Update(question *model.Question) error
	ClearFile(id uint) error
	FindOptionByID(id uint) (*model.Option, error)
	// FindOptionForQuestion returns the stored option only if it belongs to the question.
	FindOptionForQuestion(questionID, optionID uint) (*model.Option, error)
	CreateOption(option *model.Option) error
	UpdateOption(option *model.Option) error
	DeleteOption(option *model.Option) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) WithTx(tx *gorm.DB) QuestionRepository {
	return &questionRepository{db: tx}
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.First(&question, id).Error
	return &question, err
}

func (r *questionRepository) FindByIDForQuiz(quizID, id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.Where("quiz_id = ?", quizID).First(&question, id).Error
	return &question, err
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Omit("Options").Save(question).Error
}

func (r *questionRepository) ClearFile(id uint) error {
	return r.db.Model(&model.Question{}).Where("id = ?", id).Update("file", nil).Error
}

func (r *questionRepository) FindOptionByID(id uint) (*model.Option, error) {
	var option model.Option
	err := r.db.First(&option, id).Error
	return &option, err
}

func (r *questionRepository) FindOptionForQuestion(questionID, optionID uint) (*model.Option, error) {
	var option model.Option
	err := r.db.Where("question_id = ?", questionID).First(&option, optionID).Error
	return &option, err
}

func (r *questionRepository) CreateOption(option *model.Option) error {
	return r.db.Create(option).Error
}

func (r *questionRepository) UpdateOption(option *model.Option) error {
	return r.db.Save(option).Error
}

func (r *questionRepository) DeleteOption(option *model.Option) error {
	return r.db.Delete(option).Error
}
