package repository

import (
	"github.com/lshigami/classquiz/internal/model"
	"gorm.io/gorm"
)

type MateriRepository interface {
	Create(materi *model.Materi) error
	Update(materi *model.Materi) error
	Delete(materi *model.Materi) error
	FindByID(id uint) (*model.Materi, error)
	FindAll() ([]model.Materi, error)
	ClearImage(id uint) error
}

type materiRepository struct {
	db *gorm.DB
}

func NewMateriRepository(db *gorm.DB) MateriRepository {
	return &materiRepository{db: db}
}

func (r *materiRepository) Create(materi *model.Materi) error {
	return r.db.Omit("User").Create(materi).Error
}

func (r *materiRepository) Update(materi *model.Materi) error {
	return r.db.Omit("User").Save(materi).Error
}

func (r *materiRepository) Delete(materi *model.Materi) error {
	return r.db.Delete(materi).Error
}

func (r *materiRepository) FindByID(id uint) (*model.Materi, error) {
	var materi model.Materi
	err := r.db.Preload("User").First(&materi, id).Error
	return &materi, err
}

func (r *materiRepository) FindAll() ([]model.Materi, error) {
	var materi []model.Materi
	err := r.db.Preload("User").Order("created_at DESC").Find(&materi).Error
	return materi, err
}

func (r *materiRepository) ClearImage(id uint) error {
	return r.db.Model(&model.Materi{}).Where("id = ?", id).Update("image_banner", nil).Error
}
