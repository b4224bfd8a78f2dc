package repository

import (
	"time"

	"github.com/lshigami/classquiz/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	EmailTaken(email string) (bool, error)
	NumberTaken(number int64) (bool, error)
	TouchLastSeen(id uint, at time.Time) error
	FindAllExceptAdmins() ([]model.User, error)
	FindByRole(role model.Role) ([]model.User, error)
	FindRecentlySeen(limit int) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	return &user, err
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *userRepository) EmailTaken(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) NumberTaken(number int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("number = ?", number).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) TouchLastSeen(id uint, at time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).UpdateColumn("last_seen", at).Error
}

func (r *userRepository) FindAllExceptAdmins() ([]model.User, error) {
	var users []model.User
	err := r.db.Where("role <> ?", model.RoleAdmin).Order("role DESC").Order("name ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) FindByRole(role model.Role) ([]model.User, error) {
	var users []model.User
	err := r.db.Where("role = ?", role).Order("name ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) FindRecentlySeen(limit int) ([]model.User, error) {
	var users []model.User
	err := r.db.Where("last_seen IS NOT NULL").Order("last_seen DESC").Limit(limit).Find(&users).Error
	return users, err
}
