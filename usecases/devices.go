package usecases

import (
	"errors"

	"iot-manager/entities"
	"iot-manager/errs"
	"iot-manager/repositories"

	"gorm.io/gorm"
)

type DeviceUseCase struct {
	devices repositories.DeviceRepository
	tags    repositories.TagRepository
	owner   ownerResolver
}

func NewDeviceUseCase(devices repositories.DeviceRepository, projects repositories.ProjectRepository, tags repositories.TagRepository) *DeviceUseCase {
	return &DeviceUseCase{
		devices: devices,
		tags:    tags,
		owner:   ownerResolver{projects: projects, devices: devices},
	}
}

type DeviceCreate struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	SerialNumber string `json:"serial_number" binding:"required"`
	DeviceType   string `json:"device_type" binding:"required"`
	Status       string `json:"status"`
	ProjectID    string `json:"project_id" binding:"required"`
}

type DeviceUpdate struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	SerialNumber *string `json:"serial_number"`
	DeviceType   *string `json:"device_type"`
	Status       *string `json:"status"`
}

// Create registers a device under a project the caller owns. Serial
// numbers are globally unique.
func (uc *DeviceUseCase) Create(in DeviceCreate, userID string, tagIDs []string) (*entities.Device, error) {
	if err := uc.owner.requireProject(in.ProjectID, userID, "project not found or not authorized to add devices to it"); err != nil {
		return nil, err
	}
	if _, err := uc.devices.GetBySerialNumber(in.SerialNumber); err == nil {
		return nil, errs.Conflict("device with this serial number already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	resolved, err := resolveTags(uc.tags, tagIDs)
	if err != nil {
		return nil, err
	}

	device := &entities.Device{
		Name:         in.Name,
		Description:  in.Description,
		SerialNumber: in.SerialNumber,
		DeviceType:   in.DeviceType,
		Status:       in.Status,
		ProjectID:    in.ProjectID,
	}
	if err := uc.devices.Create(device); err != nil {
		return nil, err
	}
	for _, tag := range resolved {
		if err := uc.devices.AddTag(device.ID, tag.ID); err != nil {
			return nil, err
		}
	}
	return device, nil
}

func (uc *DeviceUseCase) Get(id string) (*entities.Device, error) {
	device, err := uc.devices.GetByID(id)
	if err != nil {
		return nil, asNotFound(err, "device not found")
	}
	return device, nil
}

// GetAuthorized loads the device and walks its chain to verify ownership.
func (uc *DeviceUseCase) GetAuthorized(id, userID string) (*entities.Device, error) {
	device, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	if err := uc.owner.requireProject(device.ProjectID, userID, "not authorized to access this device"); err != nil {
		return nil, err
	}
	return device, nil
}

// ListByProject returns the project's devices; the project must exist and
// belong to the caller.
func (uc *DeviceUseCase) ListByProject(projectID, userID string, skip, limit int) ([]entities.Device, error) {
	if err := uc.owner.requireProject(projectID, userID, "project not found or not authorized to access it"); err != nil {
		return nil, err
	}
	return uc.devices.GetByProjectID(projectID, skip, limit)
}

func (uc *DeviceUseCase) Search(query string, skip, limit int) ([]entities.Device, error) {
	return uc.devices.Search(query, skip, limit)
}

func (uc *DeviceUseCase) Update(id string, in DeviceUpdate, userID string) (*entities.Device, error) {
	device, err := uc.GetAuthorized(id, userID)
	if err != nil {
		return nil, err
	}
	if in.SerialNumber != nil && *in.SerialNumber != device.SerialNumber {
		if _, err := uc.devices.GetBySerialNumber(*in.SerialNumber); err == nil {
			return nil, errs.Conflict("device with this serial number already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		device.SerialNumber = *in.SerialNumber
	}
	if in.Name != nil {
		device.Name = *in.Name
	}
	if in.Description != nil {
		device.Description = *in.Description
	}
	if in.DeviceType != nil {
		device.DeviceType = *in.DeviceType
	}
	if in.Status != nil {
		device.Status = *in.Status
	}
	if err := uc.devices.Update(device); err != nil {
		return nil, err
	}
	return device, nil
}

func (uc *DeviceUseCase) Delete(id, userID string) error {
	if _, err := uc.GetAuthorized(id, userID); err != nil {
		return err
	}
	return uc.devices.Delete(id)
}

func (uc *DeviceUseCase) AddTags(id string, tagIDs []string, userID string) (*entities.Device, error) {
	device, err := uc.GetAuthorized(id, userID)
	if err != nil {
		return nil, err
	}
	resolved, err := resolveTags(uc.tags, tagIDs)
	if err != nil {
		return nil, err
	}
	for _, tag := range resolved {
		if err := uc.devices.AddTag(device.ID, tag.ID); err != nil {
			return nil, err
		}
	}
	return device, nil
}

func (uc *DeviceUseCase) RemoveTags(id string, tagIDs []string, userID string) (*entities.Device, error) {
	device, err := uc.GetAuthorized(id, userID)
	if err != nil {
		return nil, err
	}
	for _, tagID := range tagIDs {
		if err := uc.devices.RemoveTag(device.ID, tagID); err != nil {
			return nil, err
		}
	}
	return device, nil
}

func (uc *DeviceUseCase) GetTags(id, userID string) ([]entities.Tag, error) {
	device, err := uc.GetAuthorized(id, userID)
	if err != nil {
		return nil, err
	}
	return uc.devices.GetTags(device.ID)
}
