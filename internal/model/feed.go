package model

import (
	"time"

	"gorm.io/gorm"
)

type Feed struct {
	ID        uint           `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID  uint        `gorm:"index;not null"`
	Message string      `gorm:"type:text;not null"`
	Image   *string     `gorm:"type:varchar(255)"`
	User    User        `gorm:"foreignKey:UserID"`
	Replies []FeedReply `gorm:"foreignKey:FeedID"`
}

type FeedReply struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	FeedID  uint   `gorm:"index;not null"`
	UserID  uint   `gorm:"index;not null"`
	Message string `gorm:"type:text;not null"`
	User    User   `gorm:"foreignKey:UserID"`
}
