package model

import (
	"time"

	"gorm.io/gorm"
)

// Materi is a piece of lesson content published by a teacher.
type Materi struct {
	ID        uint           `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID      uint    `gorm:"index;not null"`
	Subject     string  `gorm:"type:varchar(255);not null"`
	Competence  string  `gorm:"type:text;not null"`
	Class       string  `gorm:"type:varchar(64);not null"`
	Semester    string  `gorm:"type:varchar(32);not null"`
	Meet        string  `gorm:"type:varchar(32);not null"`
	Description string  `gorm:"type:text;not null"`
	ImageBanner *string `gorm:"type:varchar(255)"`
	User        User    `gorm:"foreignKey:UserID"`
}

func (Materi) TableName() string { return "materi" }
