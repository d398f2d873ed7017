package usecases

import (
	"errors"

	"iot-manager/errs"
	"iot-manager/repositories"

	"gorm.io/gorm"
)

// ownerResolver walks the ownership chain
// user -> project -> device -> sensor explicitly, one loaded record per
// step. Every resolver returns the owning user id, or NotFound when the
// chain is broken at any link.
type ownerResolver struct {
	projects repositories.ProjectRepository
	devices  repositories.DeviceRepository
	sensors  repositories.SensorRepository
}

func (o ownerResolver) projectOwner(projectID string) (string, error) {
	project, err := o.projects.GetByID(projectID)
	if err != nil {
		return "", asNotFound(err, "project not found")
	}
	return project.UserID, nil
}

func (o ownerResolver) deviceOwner(deviceID string) (string, error) {
	device, err := o.devices.GetByID(deviceID)
	if err != nil {
		return "", asNotFound(err, "device not found")
	}
	return o.projectOwner(device.ProjectID)
}

func (o ownerResolver) sensorOwner(sensorID string) (string, error) {
	sensor, err := o.sensors.GetByID(sensorID)
	if err != nil {
		return "", asNotFound(err, "sensor not found")
	}
	return o.deviceOwner(sensor.DeviceID)
}

// requireProject verifies userID owns the project, answering Forbidden
// with msg whether the project is missing or merely foreign.
func (o ownerResolver) requireProject(projectID, userID, msg string) error {
	ownerID, err := o.projectOwner(projectID)
	return requireOwner(ownerID, err, userID, msg)
}

func (o ownerResolver) requireDevice(deviceID, userID, msg string) error {
	ownerID, err := o.deviceOwner(deviceID)
	return requireOwner(ownerID, err, userID, msg)
}

func (o ownerResolver) requireSensor(sensorID, userID, msg string) error {
	ownerID, err := o.sensorOwner(sensorID)
	return requireOwner(ownerID, err, userID, msg)
}

// requireOwner folds a broken chain into Forbidden with msg so callers
// cannot tell a missing resource from a foreign one. Storage faults are
// not access decisions and pass through untouched.
func requireOwner(ownerID string, err error, userID, msg string) error {
	if err != nil {
		if errs.KindOf(err) == errs.KindNotFound {
			return errs.Forbidden(msg)
		}
		return err
	}
	if ownerID != userID {
		return errs.Forbidden(msg)
	}
	return nil
}

// asNotFound converts a missing-row error into a NotFound of the
// taxonomy; anything else passes through as a storage fault.
func asNotFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NotFound(msg)
	}
	return err
}
