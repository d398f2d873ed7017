package repositories

import (
	"time"

	"iot-manager/db"
	"iot-manager/entities"

	"gorm.io/gorm"
)

type devicePgRepository struct {
	db db.Database
}

func NewDevicePgRepository(database db.Database) DeviceRepository {
	return &devicePgRepository{db: database}
}

func (r *devicePgRepository) Create(device *entities.Device) error {
	return r.db.GetDB().Create(device).Error
}

func (r *devicePgRepository) GetByID(id string) (*entities.Device, error) {
	var device entities.Device
	if err := r.db.GetDB().Where("id = ?", id).First(&device).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *devicePgRepository) GetBySerialNumber(serial string) (*entities.Device, error) {
	var device entities.Device
	if err := r.db.GetDB().Where("serial_number = ?", serial).First(&device).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *devicePgRepository) GetByProjectID(projectID string, skip, limit int) ([]entities.Device, error) {
	var devices []entities.Device
	err := r.db.GetDB().Where("project_id = ?", projectID).Scopes(paginate(skip, limit)).Find(&devices).Error
	return devices, err
}

func (r *devicePgRepository) Search(query string, skip, limit int) ([]entities.Device, error) {
	var devices []entities.Device
	err := textSearch(r.db.GetDB(), query, "name", "description", "serial_number").
		Scopes(paginate(skip, limit)).Find(&devices).Error
	return devices, err
}

func (r *devicePgRepository) Update(device *entities.Device) error {
	device.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return r.db.GetDB().Omit("Tags").Save(device).Error
}

func (r *devicePgRepository) Delete(id string) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		return deleteDeviceTree(tx, id)
	})
}

func (r *devicePgRepository) AddTag(deviceID, tagID string) error {
	device := entities.Device{ID: deviceID}
	return r.db.GetDB().Model(&device).Association("Tags").Append(&entities.Tag{ID: tagID})
}

func (r *devicePgRepository) RemoveTag(deviceID, tagID string) error {
	device := entities.Device{ID: deviceID}
	return r.db.GetDB().Model(&device).Association("Tags").Delete(&entities.Tag{ID: tagID})
}

func (r *devicePgRepository) GetTags(deviceID string) ([]entities.Tag, error) {
	var tags []entities.Tag
	device := entities.Device{ID: deviceID}
	err := r.db.GetDB().Model(&device).Association("Tags").Find(&tags)
	return tags, err
}
