package repository

import (
	"github.com/lshigami/classquiz/internal/model"
	"gorm.io/gorm"
)

type ResultRepository interface {
	WithTx(tx *gorm.DB) ResultRepository
	Create(result *model.Result) error
	FindByID(id uint) (*model.Result, error)
	FindByIDWithDetails(id uint) (*model.Result, error)
	// FindByUserAndQuiz returns gorm.ErrRecordNotFound when the user has no result yet.
	FindByUserAndQuiz(userID, quizID uint) (*model.Result, error)
	ExistsForUserAndQuiz(userID, quizID uint) (bool, error)
	UpdateScore(id uint, score *float64) error
	CreateResultQuizzes(rows []model.ResultQuiz) error
	CreateResultEssay(essay *model.ResultEssay) error
	EssayAnswered(resultID, questionID uint) (bool, error)
	UpdateEssayFeedback(essayID uint, feedback string) error
	FindByUserWithDetails(userID uint) ([]model.Result, error)
	FindStudentsWithoutResult(quizID uint) ([]model.User, error)
	FindStudentsWithResult(quizID uint) ([]model.User, error)
	FindByQuizWithDetails(quizID uint, userIDs []uint) ([]model.Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) WithTx(tx *gorm.DB) ResultRepository {
	return &resultRepository{db: tx}
}

func (r *resultRepository) Create(result *model.Result) error {
	return r.db.Omit("User", "Quiz", "ResultQuizzes", "ResultEssays").Create(result).Error
}

func (r *resultRepository) FindByID(id uint) (*model.Result, error) {
	var result model.Result
	err := r.db.First(&result, id).Error
	return &result, err
}

func (r *resultRepository) FindByIDWithDetails(id uint) (*model.Result, error) {
	var result model.Result
	err := withAnswers(r.db).Preload("Quiz").First(&result, id).Error
	return &result, err
}

func (r *resultRepository) FindByUserAndQuiz(userID, quizID uint) (*model.Result, error) {
	var result model.Result
	err := r.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&result).Error
	return &result, err
}

func (r *resultRepository) ExistsForUserAndQuiz(userID, quizID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Result{}).Where("user_id = ? AND quiz_id = ?", userID, quizID).Count(&count).Error
	return count > 0, err
}

func (r *resultRepository) UpdateScore(id uint, score *float64) error {
	return r.db.Model(&model.Result{}).Where("id = ?", id).Update("score", score).Error
}

func (r *resultRepository) CreateResultQuizzes(rows []model.ResultQuiz) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Omit("Question", "Option").Create(&rows).Error
}

func (r *resultRepository) CreateResultEssay(essay *model.ResultEssay) error {
	return r.db.Omit("Question").Create(essay).Error
}

func (r *resultRepository) EssayAnswered(resultID, questionID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ResultEssay{}).
		Where("result_id = ? AND question_id = ?", resultID, questionID).
		Count(&count).Error
	return count > 0, err
}

func (r *resultRepository) UpdateEssayFeedback(essayID uint, feedback string) error {
	return r.db.Model(&model.ResultEssay{}).Where("id = ?", essayID).Update("ai_feedback", feedback).Error
}

func (r *resultRepository) FindByUserWithDetails(userID uint) ([]model.Result, error) {
	var results []model.Result
	err := withAnswers(r.db).
		Preload("Quiz", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) FindStudentsWithoutResult(quizID uint) ([]model.User, error) {
	var users []model.User
	submitted := r.db.Model(&model.Result{}).Select("user_id").Where("quiz_id = ?", quizID)
	err := r.db.Where("role = ?", model.RoleStudent).
		Where("id NOT IN (?)", submitted).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *resultRepository) FindStudentsWithResult(quizID uint) ([]model.User, error) {
	var users []model.User
	submitted := r.db.Model(&model.Result{}).Select("user_id").Where("quiz_id = ?", quizID)
	err := r.db.Where("role = ?", model.RoleStudent).
		Where("id IN (?)", submitted).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *resultRepository) FindByQuizWithDetails(quizID uint, userIDs []uint) ([]model.Result, error) {
	var results []model.Result
	if len(userIDs) == 0 {
		return results, nil
	}
	err := withAnswers(r.db).
		Where("quiz_id = ? AND user_id IN ?", quizID, userIDs).
		Find(&results).Error
	return results, err
}

// withAnswers preloads answer rows. Questions and options are loaded unscoped so
// answers keep resolving after a teacher deletes them.
func withAnswers(db *gorm.DB) *gorm.DB {
	unscoped := func(db *gorm.DB) *gorm.DB { return db.Unscoped() }
	return db.
		Preload("ResultQuizzes", func(db *gorm.DB) *gorm.DB { return db.Order("result_quizzes.id ASC") }).
		Preload("ResultQuizzes.Question", unscoped).
		Preload("ResultQuizzes.Option", unscoped).
		Preload("ResultEssays", func(db *gorm.DB) *gorm.DB { return db.Order("result_essays.id ASC") }).
		Preload("ResultEssays.Question", unscoped)
}
