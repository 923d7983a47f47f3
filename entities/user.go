package entities

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	Username     string `gorm:"uniqueIndex" json:"username"`
	FullName     string `json:"full_name,omitempty"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"is_active"`
	IsAdmin      bool   `json:"is_admin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
