package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SensorData is a single timestamped reading. Readings are immutable
// once stored; there is no update path.
type SensorData struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Value     float64   `gorm:"not null" json:"value"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	SensorID  string    `gorm:"index;not null;type:varchar(36)" json:"sensor_id"`
}

func (SensorData) TableName() string { return "sensor_data" }

func (sd *SensorData) BeforeCreate(tx *gorm.DB) (err error) {
	if sd.ID == "" {
		sd.ID = uuid.New().String()
	}
	if sd.Timestamp.IsZero() {
		sd.Timestamp = time.Now().UTC()
	}
	return
}
