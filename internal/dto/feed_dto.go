package dto

import "time"

type FeedRequest struct {
	Message string `json:"message" form:"message" binding:"required"`
}

type FeedReplyRequest struct {
	Message string `json:"message" form:"message" binding:"required"`
}

type FeedReplyResponse struct {
	ID        uint         `json:"id"`
	FeedID    uint         `json:"feed_id"`
	UserID    uint         `json:"user_id"`
	Message   string       `json:"message"`
	CreatedAt time.Time    `json:"created_at"`
	User      *UserSummary `json:"user,omitempty"`
}

type FeedResponse struct {
	ID        uint                `json:"id"`
	UserID    uint                `json:"user_id"`
	Message   string              `json:"message"`
	Image     *string             `json:"image"`
	CreatedAt time.Time           `json:"created_at"`
	User      *UserSummary        `json:"user,omitempty"`
	Replies   []FeedReplyResponse `json:"replies"`
}
