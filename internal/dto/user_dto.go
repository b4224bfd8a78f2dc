package dto

import (
	"time"

	"github.com/lshigami/classquiz/internal/model"
)

type RegisterRequest struct {
	Name                 string `json:"name" form:"name" binding:"required,max=255"`
	Email                string `json:"email" form:"email" binding:"required,email,max=255"`
	Password             string `json:"password" form:"password" binding:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" binding:"required,eqfield=Password"`
	Role                 string `json:"role" form:"role" binding:"required,oneof=siswa guru"`
	Number               *int64 `json:"number" form:"number" binding:"omitempty,min=1"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UserResponse struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	Avatar    *string    `json:"avatar"`
	Number    *int64     `json:"number"`
	LastSeen  *time.Time `json:"last_seen"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UserSummary is the author block embedded in feeds, materi and quizzes.
type UserSummary struct {
	ID     uint       `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	Avatar *string    `json:"avatar"`
}

type StudentResponse struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar"`
	Number *int64  `json:"number"`
}

type UserStatusResponse struct {
	ID       uint       `json:"id"`
	Name     string     `json:"name"`
	Role     model.Role `json:"role"`
	Avatar   *string    `json:"avatar"`
	LastSeen *time.Time `json:"last_seen"`
	Online   bool       `json:"online"`
}

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type" example:"Bearer"`
	ExpiresAt time.Time    `json:"expires_at"`
}
