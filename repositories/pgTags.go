package repositories

import (
	"iot-manager/db"
	"iot-manager/entities"

	"gorm.io/gorm"
)

type tagPgRepository struct {
	db db.Database
}

func NewTagPgRepository(database db.Database) TagRepository {
	return &tagPgRepository{db: database}
}

func (r *tagPgRepository) Create(tag *entities.Tag) error {
	return r.db.GetDB().Create(tag).Error
}

func (r *tagPgRepository) GetByID(id string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.GetDB().Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagPgRepository) GetByName(name string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.GetDB().Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagPgRepository) GetAll(skip, limit int) ([]entities.Tag, error) {
	var tags []entities.Tag
	err := r.db.GetDB().Scopes(paginate(skip, limit)).Find(&tags).Error
	return tags, err
}

func (r *tagPgRepository) Search(query string, skip, limit int) ([]entities.Tag, error) {
	var tags []entities.Tag
	err := textSearch(r.db.GetDB(), query, "name").Scopes(paginate(skip, limit)).Find(&tags).Error
	return tags, err
}

func (r *tagPgRepository) Update(tag *entities.Tag) error {
	return r.db.GetDB().Save(tag).Error
}

// Delete removes the tag together with its project and device
// associations.
func (r *tagPgRepository) Delete(id string) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM project_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM device_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Tag{}).Error
	})
}
