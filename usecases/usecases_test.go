package usecases

import (
	"fmt"
	"testing"
	"time"

	"iot-manager/db"
	"iot-manager/entities"
	"iot-manager/repositories"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// env wires the full stack against an in-memory sqlite store so the use
// cases run against real queries instead of mocks.
type env struct {
	users      repositories.UserRepository
	projects   repositories.ProjectRepository
	devices    repositories.DeviceRepository
	sensors    repositories.SensorRepository
	sensorData repositories.SensorDataRepository
	tags       repositories.TagRepository
	commands   repositories.CommandRepository

	userUC       *UserUseCase
	projectUC    *ProjectUseCase
	deviceUC     *DeviceUseCase
	sensorUC     *SensorUseCase
	sensorDataUC *SensorDataUseCase
	tagUC        *TagUseCase
	commandUC    *CommandUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database := &db.GormDatabase{DB: gdb}

	e := &env{
		users:      repositories.NewUserPgRepository(database),
		projects:   repositories.NewProjectPgRepository(database),
		devices:    repositories.NewDevicePgRepository(database),
		sensors:    repositories.NewSensorPgRepository(database),
		sensorData: repositories.NewSensorDataPgRepository(database),
		tags:       repositories.NewTagPgRepository(database),
		commands:   repositories.NewCommandPgRepository(database),
	}
	e.userUC = NewUserUseCase(e.users)
	e.projectUC = NewProjectUseCase(e.projects, e.tags)
	e.deviceUC = NewDeviceUseCase(e.devices, e.projects, e.tags)
	e.sensorUC = NewSensorUseCase(e.sensors, e.sensorData, e.devices, e.projects)
	e.sensorDataUC = NewSensorDataUseCase(e.sensorData, e.sensors, e.devices, e.projects)
	e.tagUC = NewTagUseCase(e.tags)
	e.commandUC = NewCommandUseCase(e.commands, e.devices, e.projects)
	return e
}

func (e *env) user(t *testing.T, username string) *entities.User {
	t.Helper()
	user, err := e.userUC.Register(UserRegister{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func (e *env) project(t *testing.T, userID string) *entities.Project {
	t.Helper()
	project := &entities.Project{Name: "greenhouse", UserID: userID}
	if err := e.projects.Create(project); err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}

func (e *env) device(t *testing.T, projectID, serial string) *entities.Device {
	t.Helper()
	device := &entities.Device{
		Name:         "gateway-" + serial,
		SerialNumber: serial,
		DeviceType:   "gateway",
		ProjectID:    projectID,
	}
	if err := e.devices.Create(device); err != nil {
		t.Fatalf("create device: %v", err)
	}
	return device
}

func (e *env) sensor(t *testing.T, deviceID, name string) *entities.Sensor {
	t.Helper()
	sensor := &entities.Sensor{Name: name, UnitOfMeasurement: "C", DeviceID: deviceID}
	if err := e.sensors.Create(sensor); err != nil {
		t.Fatalf("create sensor: %v", err)
	}
	return sensor
}

func (e *env) reading(t *testing.T, sensorID string, value float64, ts time.Time) *entities.SensorData {
	t.Helper()
	data := &entities.SensorData{SensorID: sensorID, Value: value, Timestamp: ts}
	if err := e.sensorData.Create(data); err != nil {
		t.Fatalf("create reading: %v", err)
	}
	return data
}

func (e *env) tag(t *testing.T, name string) *entities.Tag {
	t.Helper()
	tag, err := e.tagUC.Create(TagCreate{Name: name})
	if err != nil {
		t.Fatalf("create tag %s: %v", name, err)
	}
	return tag
}

func ptr[T any](v T) *T { return &v }
