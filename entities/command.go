package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Command statuses. The update paths accept any string; the lifecycle
// below is the expected order but is not enforced.
const (
	CommandStatusPending      = "pending"
	CommandStatusSent         = "sent"
	CommandStatusAcknowledged = "acknowledged"
	CommandStatusFailed       = "failed"
	CommandStatusCompleted    = "completed"
)

type Command struct {
	ID              string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	DeviceID        string     `gorm:"index;not null;type:varchar(36)" json:"device_id"`
	CommandType     string     `gorm:"not null;type:varchar(50)" json:"command_type"`
	Parameters      string     `gorm:"type:text" json:"parameters"` // opaque, usually JSON
	Status          string     `gorm:"type:varchar(20);default:pending" json:"status"`
	IssuedAt        time.Time  `json:"issued_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	ResponseMessage string     `gorm:"type:text" json:"response_message"`
}

func (c *Command) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = CommandStatusPending
	}
	if c.IssuedAt.IsZero() {
		c.IssuedAt = time.Now().UTC()
	}
	return
}
