package usecases

import (
	"math"
	"time"

	"iot-manager/entities"
	"iot-manager/errs"
	"iot-manager/repositories"
)

type SensorDataUseCase struct {
	data    repositories.SensorDataRepository
	sensors repositories.SensorRepository
	devices repositories.DeviceRepository
	owner   ownerResolver
}

func NewSensorDataUseCase(data repositories.SensorDataRepository, sensors repositories.SensorRepository, devices repositories.DeviceRepository, projects repositories.ProjectRepository) *SensorDataUseCase {
	return &SensorDataUseCase{
		data:    data,
		sensors: sensors,
		devices: devices,
		owner:   ownerResolver{projects: projects, devices: devices, sensors: sensors},
	}
}

type SensorDataCreate struct {
	SensorID  string     `json:"sensor_id" binding:"required"`
	Value     float64    `json:"value"`
	Timestamp *time.Time `json:"timestamp"`
}

// Create stores one reading for a sensor the caller owns. A value
// outside the sensor's declared range is rejected.
func (uc *SensorDataUseCase) Create(in SensorDataCreate, userID string) (*entities.SensorData, error) {
	if err := uc.owner.requireSensor(in.SensorID, userID, "sensor not found or not authorized to add data to it"); err != nil {
		return nil, err
	}
	sensor, err := uc.sensors.GetByID(in.SensorID)
	if err != nil {
		return nil, asNotFound(err, "sensor not found")
	}
	if err := validateReading(sensor, in.Value); err != nil {
		return nil, err
	}

	data := &entities.SensorData{
		Value:    in.Value,
		SensorID: in.SensorID,
	}
	if in.Timestamp != nil {
		data.Timestamp = in.Timestamp.UTC()
	}
	if err := uc.data.Create(data); err != nil {
		return nil, err
	}
	return data, nil
}

func (uc *SensorDataUseCase) Get(id string) (*entities.SensorData, error) {
	data, err := uc.data.GetByID(id)
	if err != nil {
		return nil, asNotFound(err, "sensor data not found")
	}
	return data, nil
}

func (uc *SensorDataUseCase) GetAuthorized(id, userID string) (*entities.SensorData, error) {
	data, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	if err := uc.owner.requireSensor(data.SensorID, userID, "not authorized to access this sensor data"); err != nil {
		return nil, err
	}
	return data, nil
}

// ListBySensor returns readings newest first, optionally bounded to
// [start, end].
func (uc *SensorDataUseCase) ListBySensor(sensorID, userID string, start, end *time.Time, skip, limit int) ([]entities.SensorData, error) {
	if err := uc.owner.requireSensor(sensorID, userID, "sensor not found or not authorized to access its data"); err != nil {
		return nil, err
	}
	return uc.data.GetBySensorID(sensorID, start, end, skip, limit)
}

func (uc *SensorDataUseCase) Delete(id, userID string) error {
	if _, err := uc.GetAuthorized(id, userID); err != nil {
		return err
	}
	return uc.data.Delete(id)
}

// validateReading checks a value against the sensor's optional range.
func validateReading(sensor *entities.Sensor, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return errs.BadRequest("value must be a finite number")
	}
	if sensor.MinValue != nil && value < *sensor.MinValue {
		return errs.BadRequest("value is below the sensor's minimum")
	}
	if sensor.MaxValue != nil && value > *sensor.MaxValue {
		return errs.BadRequest("value is above the sensor's maximum")
	}
	return nil
}
