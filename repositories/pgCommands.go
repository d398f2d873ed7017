package repositories

import (
	"iot-manager/db"
	"iot-manager/entities"

	"gorm.io/gorm"
)

type commandPgRepository struct {
	db db.Database
}

func NewCommandPgRepository(database db.Database) CommandRepository {
	return &commandPgRepository{db: database}
}

func (r *commandPgRepository) Create(cmd *entities.Command) error {
	return r.db.GetDB().Create(cmd).Error
}

func (r *commandPgRepository) GetByID(id string) (*entities.Command, error) {
	var cmd entities.Command
	if err := r.db.GetDB().Where("id = ?", id).First(&cmd).Error; err != nil {
		return nil, err
	}
	return &cmd, nil
}

func (r *commandPgRepository) GetByDeviceID(deviceID string, skip, limit int) ([]entities.Command, error) {
	var cmds []entities.Command
	err := r.db.GetDB().Where("device_id = ?", deviceID).
		Order("issued_at ASC").Scopes(paginate(skip, limit)).Find(&cmds).Error
	return cmds, err
}

// PullPending reads pending commands oldest first and flips them to sent
// in the same transaction. Two concurrent pulls for one device may still
// hand off the same command; serialization is left to the store's row
// locking.
func (r *commandPgRepository) PullPending(deviceID string, limit int) ([]entities.Command, error) {
	if limit <= 0 {
		limit = 10
	}
	var cmds []entities.Command
	err := r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("device_id = ? AND status = ?", deviceID, entities.CommandStatusPending).
			Order("issued_at ASC").Limit(limit).Find(&cmds).Error; err != nil {
			return err
		}
		if len(cmds) == 0 {
			return nil
		}
		ids := make([]string, len(cmds))
		for i := range cmds {
			ids[i] = cmds[i].ID
		}
		if err := tx.Model(&entities.Command{}).Where("id IN ?", ids).
			Update("status", entities.CommandStatusSent).Error; err != nil {
			return err
		}
		for i := range cmds {
			cmds[i].Status = entities.CommandStatusSent
		}
		return nil
	})
	return cmds, err
}

func (r *commandPgRepository) Update(cmd *entities.Command) error {
	return r.db.GetDB().Save(cmd).Error
}

func (r *commandPgRepository) Delete(id string) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.Command{}).Error
}
