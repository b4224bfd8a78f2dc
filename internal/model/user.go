package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OnlineWindow is how recently a user must have been seen to count as online.
const OnlineWindow = 2 * time.Minute

type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string     `gorm:"type:varchar(255);not null" json:"name"`
	Email    string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string     `gorm:"type:varchar(255);not null" json:"-"`
	Role     Role       `gorm:"type:varchar(16);index;not null" json:"role"`
	Avatar   *string    `gorm:"type:varchar(255)" json:"avatar"`
	Number   *int64     `gorm:"uniqueIndex" json:"number"`
	LastSeen *time.Time `json:"last_seen"`
}

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// Online reports whether the user was seen within OnlineWindow of now.
func (u *User) Online(now time.Time) bool {
	return u.LastSeen != nil && now.Sub(*u.LastSeen) <= OnlineWindow
}

// AccessToken backs one issued bearer token; deleting it revokes the token.
type AccessToken struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
