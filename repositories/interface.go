package repositories

import (
	"time"

	"iot-manager/entities"
)

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id string) (*entities.User, error)
	GetByUsername(username string) (*entities.User, error)
	GetByEmail(email string) (*entities.User, error)
	GetAll(skip, limit int) ([]entities.User, error)
	Update(user *entities.User) error
	// Delete removes the user and everything the user owns.
	Delete(id string) error
}

type ProjectRepository interface {
	Create(project *entities.Project) error
	GetByID(id string) (*entities.Project, error)
	GetByUserID(userID string, skip, limit int) ([]entities.Project, error)
	Search(query string, skip, limit int) ([]entities.Project, error)
	Update(project *entities.Project) error
	// Delete removes the project, its devices and everything under them.
	Delete(id string) error
	AddTag(projectID, tagID string) error
	RemoveTag(projectID, tagID string) error
	GetTags(projectID string) ([]entities.Tag, error)
}

type DeviceRepository interface {
	Create(device *entities.Device) error
	GetByID(id string) (*entities.Device, error)
	GetBySerialNumber(serial string) (*entities.Device, error)
	GetByProjectID(projectID string, skip, limit int) ([]entities.Device, error)
	Search(query string, skip, limit int) ([]entities.Device, error)
	Update(device *entities.Device) error
	// Delete removes the device, its sensors, their readings and its commands.
	Delete(id string) error
	AddTag(deviceID, tagID string) error
	RemoveTag(deviceID, tagID string) error
	GetTags(deviceID string) ([]entities.Tag, error)
}

type SensorRepository interface {
	Create(sensor *entities.Sensor) error
	GetByID(id string) (*entities.Sensor, error)
	GetByDeviceID(deviceID string, skip, limit int) ([]entities.Sensor, error)
	GetByNameAndDevice(name, deviceID string) (*entities.Sensor, error)
	Update(sensor *entities.Sensor) error
	// Delete removes the sensor and its readings.
	Delete(id string) error
}

type SensorDataRepository interface {
	Create(data *entities.SensorData) error
	GetByID(id string) (*entities.SensorData, error)
	// GetBySensorID returns readings newest first, optionally bounded by
	// [start, end].
	GetBySensorID(sensorID string, start, end *time.Time, skip, limit int) ([]entities.SensorData, error)
	// GetRecentBySensorID returns up to limit readings newest first.
	GetRecentBySensorID(sensorID string, limit int) ([]entities.SensorData, error)
	// GetByDeviceID returns every reading of every sensor on the device,
	// ordered by sensor then timestamp ascending.
	GetByDeviceID(deviceID string) ([]entities.SensorData, error)
	Delete(id string) error
}

type TagRepository interface {
	Create(tag *entities.Tag) error
	GetByID(id string) (*entities.Tag, error)
	GetByName(name string) (*entities.Tag, error)
	GetAll(skip, limit int) ([]entities.Tag, error)
	Search(query string, skip, limit int) ([]entities.Tag, error)
	Update(tag *entities.Tag) error
	Delete(id string) error
}

type CommandRepository interface {
	Create(cmd *entities.Command) error
	GetByID(id string) (*entities.Command, error)
	GetByDeviceID(deviceID string, skip, limit int) ([]entities.Command, error)
	// PullPending returns pending commands for the device and marks every
	// returned command as sent within the same transaction.
	PullPending(deviceID string, limit int) ([]entities.Command, error)
	Update(cmd *entities.Command) error
	Delete(id string) error
}
