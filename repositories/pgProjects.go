package repositories

import (
	"time"

	"iot-manager/db"
	"iot-manager/entities"

	"gorm.io/gorm"
)

type projectPgRepository struct {
	db db.Database
}

func NewProjectPgRepository(database db.Database) ProjectRepository {
	return &projectPgRepository{db: database}
}

func (r *projectPgRepository) Create(project *entities.Project) error {
	return r.db.GetDB().Create(project).Error
}

func (r *projectPgRepository) GetByID(id string) (*entities.Project, error) {
	var project entities.Project
	if err := r.db.GetDB().Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectPgRepository) GetByUserID(userID string, skip, limit int) ([]entities.Project, error) {
	var projects []entities.Project
	err := r.db.GetDB().Where("user_id = ?", userID).Scopes(paginate(skip, limit)).Find(&projects).Error
	return projects, err
}

func (r *projectPgRepository) Search(query string, skip, limit int) ([]entities.Project, error) {
	var projects []entities.Project
	err := textSearch(r.db.GetDB(), query, "name", "description").
		Scopes(paginate(skip, limit)).Find(&projects).Error
	return projects, err
}

func (r *projectPgRepository) Update(project *entities.Project) error {
	project.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return r.db.GetDB().Omit("Tags").Save(project).Error
}

func (r *projectPgRepository) Delete(id string) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		return deleteProjectTree(tx, id)
	})
}

func (r *projectPgRepository) AddTag(projectID, tagID string) error {
	project := entities.Project{ID: projectID}
	return r.db.GetDB().Model(&project).Association("Tags").Append(&entities.Tag{ID: tagID})
}

func (r *projectPgRepository) RemoveTag(projectID, tagID string) error {
	project := entities.Project{ID: projectID}
	return r.db.GetDB().Model(&project).Association("Tags").Delete(&entities.Tag{ID: tagID})
}

func (r *projectPgRepository) GetTags(projectID string) ([]entities.Tag, error) {
	var tags []entities.Tag
	project := entities.Project{ID: projectID}
	err := r.db.GetDB().Model(&project).Association("Tags").Find(&tags)
	return tags, err
}
