package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Device statuses.
const (
	DeviceStatusOnline  = "online"
	DeviceStatusOffline = "offline"
	DeviceStatusError   = "error"
)

type Device struct {
	ID           string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string `gorm:"not null;type:varchar(100)" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	SerialNumber string `gorm:"unique;not null;type:varchar(100)" json:"serial_number"`
	DeviceType   string `gorm:"not null;type:varchar(50)" json:"device_type"` // e.g. sensor, actuator, gateway
	Status       string `gorm:"type:varchar(20);default:offline" json:"status"`
	ProjectID    string `gorm:"index;not null;type:varchar(36)" json:"project_id"`
	Tags         []Tag  `gorm:"many2many:device_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func (d *Device) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Status == "" {
		d.Status = DeviceStatusOffline
	}
	now := time.Now().UTC().Format(time.RFC3339)
	d.CreatedAt = now
	d.UpdatedAt = now
	return
}
