package repository

import (
	"time"

	"github.com/lshigami/classquiz/internal/model"
	"gorm.io/gorm"
)

type TokenRepository interface {
	Create(token *model.AccessToken) error
	// Active reports whether the token id exists for the user and has not expired.
	Active(id string, userID uint, now time.Time) (bool, error)
	DeleteByUser(userID uint) error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(token *model.AccessToken) error {
	return r.db.Create(token).Error
}

func (r *tokenRepository) Active(id string, userID uint, now time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&model.AccessToken{}).
		Where("id = ? AND user_id = ? AND expires_at > ?", id, userID, now).
		Count(&count).Error
	return count > 0, err
}

func (r *tokenRepository) DeleteByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.AccessToken{}).Error
}
