package repository

import (
	"github.com/lshigami/classquiz/internal/model"
	"gorm.io/gorm"
)

type FeedRepository interface {
	Create(feed *model.Feed) error
	FindByID(id uint) (*model.Feed, error)
	FindByIDWithReplies(id uint) (*model.Feed, error)
	FindAllWithReplies() ([]model.Feed, error)
	CreateReply(reply *model.FeedReply) error
	FindReplyByID(id uint) (*model.FeedReply, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) Create(feed *model.Feed) error {
	return r.db.Omit("User", "Replies").Create(feed).Error
}

func (r *feedRepository) FindByID(id uint) (*model.Feed, error) {
	var feed model.Feed
	err := r.db.First(&feed, id).Error
	return &feed, err
}

func (r *feedRepository) FindByIDWithReplies(id uint) (*model.Feed, error) {
	var feed model.Feed
	err := withReplies(r.db).First(&feed, id).Error
	return &feed, err
}

func (r *feedRepository) FindAllWithReplies() ([]model.Feed, error) {
	var feeds []model.Feed
	err := withReplies(r.db).Order("created_at DESC").Order("id DESC").Find(&feeds).Error
	return feeds, err
}

func (r *feedRepository) CreateReply(reply *model.FeedReply) error {
	return r.db.Omit("User").Create(reply).Error
}

func (r *feedRepository) FindReplyByID(id uint) (*model.FeedReply, error) {
	var reply model.FeedReply
	err := r.db.Preload("User").First(&reply, id).Error
	return &reply, err
}

func withReplies(db *gorm.DB) *gorm.DB {
	return db.Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("feed_replies.id ASC") }).
		Preload("Replies.User")
}
