package usecases

import (
	"iot-manager/entities"
	"iot-manager/repositories"
)

type SensorUseCase struct {
	sensors repositories.SensorRepository
	data    repositories.SensorDataRepository
	owner   ownerResolver
}

func NewSensorUseCase(sensors repositories.SensorRepository, data repositories.SensorDataRepository, devices repositories.DeviceRepository, projects repositories.ProjectRepository) *SensorUseCase {
	return &SensorUseCase{
		sensors: sensors,
		data:    data,
		owner:   ownerResolver{projects: projects, devices: devices, sensors: sensors},
	}
}

type SensorCreate struct {
	Name              string   `json:"name" binding:"required"`
	UnitOfMeasurement string   `json:"unit_of_measurement"`
	MinValue          *float64 `json:"min_value"`
	MaxValue          *float64 `json:"max_value"`
	DeviceID          string   `json:"device_id" binding:"required"`
}

type SensorUpdate struct {
	Name              *string  `json:"name"`
	UnitOfMeasurement *string  `json:"unit_of_measurement"`
	MinValue          *float64 `json:"min_value"`
	MaxValue          *float64 `json:"max_value"`
}

func (uc *SensorUseCase) Create(in SensorCreate, userID string) (*entities.Sensor, error) {
	if err := uc.owner.requireDevice(in.DeviceID, userID, "device not found or not authorized to add sensors to it"); err != nil {
		return nil, err
	}
	sensor := &entities.Sensor{
		Name:              in.Name,
		UnitOfMeasurement: in.UnitOfMeasurement,
		MinValue:          in.MinValue,
		MaxValue:          in.MaxValue,
		DeviceID:          in.DeviceID,
	}
	if err := uc.sensors.Create(sensor); err != nil {
		return nil, err
	}
	return sensor, nil
}

func (uc *SensorUseCase) Get(id string) (*entities.Sensor, error) {
	sensor, err := uc.sensors.GetByID(id)
	if err != nil {
		return nil, asNotFound(err, "sensor not found")
	}
	return sensor, nil
}

func (uc *SensorUseCase) GetAuthorized(id, userID string) (*entities.Sensor, error) {
	sensor, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	if err := uc.owner.requireDevice(sensor.DeviceID, userID, "not authorized to access this sensor"); err != nil {
		return nil, err
	}
	return sensor, nil
}

func (uc *SensorUseCase) ListByDevice(deviceID, userID string, skip, limit int) ([]entities.Sensor, error) {
	if err := uc.owner.requireDevice(deviceID, userID, "device not found or not authorized to access its sensors"); err != nil {
		return nil, err
	}
	return uc.sensors.GetByDeviceID(deviceID, skip, limit)
}

func (uc *SensorUseCase) Update(id string, in SensorUpdate, userID string) (*entities.Sensor, error) {
	sensor, err := uc.GetAuthorized(id, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		sensor.Name = *in.Name
	}
	if in.UnitOfMeasurement != nil {
		sensor.UnitOfMeasurement = *in.UnitOfMeasurement
	}
	if in.MinValue != nil {
		sensor.MinValue = in.MinValue
	}
	if in.MaxValue != nil {
		sensor.MaxValue = in.MaxValue
	}
	if err := uc.sensors.Update(sensor); err != nil {
		return nil, err
	}
	return sensor, nil
}

func (uc *SensorUseCase) Delete(id, userID string) error {
	if _, err := uc.GetAuthorized(id, userID); err != nil {
		return err
	}
	return uc.sensors.Delete(id)
}
