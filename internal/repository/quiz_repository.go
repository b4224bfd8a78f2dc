package repository

import (
	"github.com/lshigami/classquiz/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	WithTx(tx *gorm.DB) QuizRepository
	Create(quiz *model.Quiz) error
	Update(quiz *model.Quiz) error
	FindBySlug(slug string) (*model.Quiz, error)
	// FindBySlugWithQuestions loads questions in id order, with their options when withOptions is set.
	FindBySlugWithQuestions(slug string, withOptions bool) (*model.Quiz, error)
	FindAllByType(quizType model.QuizType, withOptions bool) ([]model.Quiz, error)
	// Delete soft-deletes the quiz together with its questions and options.
	Delete(quiz *model.Quiz) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) WithTx(tx *gorm.DB) QuizRepository {
	return &quizRepository{db: tx}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	// Questions and their options are inserted through the associations.
	return r.db.Omit("User").Create(quiz).Error
}

func (r *quizRepository) Update(quiz *model.Quiz) error {
	return r.db.Omit("Questions", "User").Save(quiz).Error
}

func (r *quizRepository) FindBySlug(slug string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.Where("slug = ?", slug).First(&quiz).Error
	return &quiz, err
}

func (r *quizRepository) FindBySlugWithQuestions(slug string, withOptions bool) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.withQuestions(r.db, withOptions).Preload("User").Where("slug = ?", slug).First(&quiz).Error
	return &quiz, err
}

func (r *quizRepository) FindAllByType(quizType model.QuizType, withOptions bool) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.withQuestions(r.db, withOptions).Preload("User").
		Where("type = ?", quizType).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) Delete(quiz *model.Quiz) error {
	questionIDs := r.db.Model(&model.Question{}).Select("id").Where("quiz_id = ?", quiz.ID)
	if err := r.db.Where("question_id IN (?)", questionIDs).Delete(&model.Option{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("quiz_id = ?", quiz.ID).Delete(&model.Question{}).Error; err != nil {
		return err
	}
	return r.db.Delete(quiz).Error
}

func (r *quizRepository) withQuestions(db *gorm.DB, withOptions bool) *gorm.DB {
	db = db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.id ASC")
	})
	if withOptions {
		db = db.Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.id ASC")
		})
	}
	return db
}
