package repositories

import (
	"time"

	"iot-manager/db"
	"iot-manager/entities"
)

type sensorDataPgRepository struct {
	db db.Database
}

func NewSensorDataPgRepository(database db.Database) SensorDataRepository {
	return &sensorDataPgRepository{db: database}
}

func (r *sensorDataPgRepository) Create(data *entities.SensorData) error {
	return r.db.GetDB().Create(data).Error
}

func (r *sensorDataPgRepository) GetByID(id string) (*entities.SensorData, error) {
	var data entities.SensorData
	if err := r.db.GetDB().Where("id = ?", id).First(&data).Error; err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *sensorDataPgRepository) GetBySensorID(sensorID string, start, end *time.Time, skip, limit int) ([]entities.SensorData, error) {
	tx := r.db.GetDB().Where("sensor_id = ?", sensorID)
	if start != nil {
		tx = tx.Where("timestamp >= ?", *start)
	}
	if end != nil {
		tx = tx.Where("timestamp <= ?", *end)
	}
	var data []entities.SensorData
	err := tx.Order("timestamp DESC").Scopes(paginate(skip, limit)).Find(&data).Error
	return data, err
}

func (r *sensorDataPgRepository) GetRecentBySensorID(sensorID string, limit int) ([]entities.SensorData, error) {
	if limit <= 0 {
		limit = 1
	}
	var data []entities.SensorData
	err := r.db.GetDB().Where("sensor_id = ?", sensorID).
		Order("timestamp DESC").Limit(limit).Find(&data).Error
	return data, err
}

func (r *sensorDataPgRepository) GetByDeviceID(deviceID string) ([]entities.SensorData, error) {
	var data []entities.SensorData
	err := r.db.GetDB().
		Joins("JOIN sensors ON sensors.id = sensor_data.sensor_id").
		Where("sensors.device_id = ?", deviceID).
		Order("sensor_data.sensor_id, sensor_data.timestamp ASC").
		Find(&data).Error
	return data, err
}

func (r *sensorDataPgRepository) Delete(id string) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.SensorData{}).Error
}
