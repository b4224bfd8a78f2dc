package dto

import "time"

type MateriRequest struct {
	Subject     string `json:"subject" form:"subject" binding:"required,max=255"`
	Competence  string `json:"competence" form:"competence" binding:"required"`
	Class       string `json:"class" form:"class" binding:"required,max=64"`
	Semester    string `json:"semester" form:"semester" binding:"required,max=32"`
	Meet        string `json:"meet" form:"meet" binding:"required,max=32"`
	Description string `json:"description" form:"description" binding:"required"`
}

type MateriResponse struct {
	ID          uint         `json:"id"`
	UserID      uint         `json:"user_id"`
	Subject     string       `json:"subject"`
	Competence  string       `json:"competence"`
	Class       string       `json:"class"`
	Semester    string       `json:"semester"`
	Meet        string       `json:"meet"`
	Description string       `json:"description"`
	ImageBanner *string      `json:"image_banner"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	User        *UserSummary `json:"user,omitempty"`
}
