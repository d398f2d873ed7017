package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns projects. Passwords are stored as bcrypt hashes only.
type User struct {
	ID             string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username       string `gorm:"unique;not null;type:varchar(50)" json:"username"`
	Email          string `gorm:"unique;not null;type:varchar(100)" json:"email"`
	HashedPassword string `gorm:"not null;type:varchar(255)" json:"-"`
	IsActive       bool   `gorm:"default:true" json:"is_active"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	u.CreatedAt = now
	u.UpdatedAt = now
	return
}
