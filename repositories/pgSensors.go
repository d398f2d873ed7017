package repositories

import (
	"time"

	"iot-manager/db"
	"iot-manager/entities"

	"gorm.io/gorm"
)

type sensorPgRepository struct {
	db db.Database
}

func NewSensorPgRepository(database db.Database) SensorRepository {
	return &sensorPgRepository{db: database}
}

func (r *sensorPgRepository) Create(sensor *entities.Sensor) error {
	return r.db.GetDB().Create(sensor).Error
}

func (r *sensorPgRepository) GetByID(id string) (*entities.Sensor, error) {
	var sensor entities.Sensor
	if err := r.db.GetDB().Where("id = ?", id).First(&sensor).Error; err != nil {
		return nil, err
	}
	return &sensor, nil
}

func (r *sensorPgRepository) GetByDeviceID(deviceID string, skip, limit int) ([]entities.Sensor, error) {
	var sensors []entities.Sensor
	err := r.db.GetDB().Where("device_id = ?", deviceID).Scopes(paginate(skip, limit)).Find(&sensors).Error
	return sensors, err
}

func (r *sensorPgRepository) GetByNameAndDevice(name, deviceID string) (*entities.Sensor, error) {
	var sensor entities.Sensor
	err := r.db.GetDB().Where("name = ? AND device_id = ?", name, deviceID).First(&sensor).Error
	if err != nil {
		return nil, err
	}
	return &sensor, nil
}

func (r *sensorPgRepository) Update(sensor *entities.Sensor) error {
	sensor.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return r.db.GetDB().Save(sensor).Error
}

func (r *sensorPgRepository) Delete(id string) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		return deleteSensorTree(tx, id)
	})
}
