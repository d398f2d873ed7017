package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a shared label. Tags have no owner: any authenticated user may
// manage them and attach them to projects or devices they own.
type Tag struct {
	ID   string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name string `gorm:"unique;not null;type:varchar(50)" json:"name"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}
