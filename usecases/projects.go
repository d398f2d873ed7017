package usecases

import (
	"errors"

	"iot-manager/entities"
	"iot-manager/errs"
	"iot-manager/repositories"

	"gorm.io/gorm"
)

type ProjectUseCase struct {
	projects repositories.ProjectRepository
	tags     repositories.TagRepository
}

func NewProjectUseCase(projects repositories.ProjectRepository, tags repositories.TagRepository) *ProjectUseCase {
	return &ProjectUseCase{projects: projects, tags: tags}
}

type ProjectCreate struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type ProjectUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Create makes a project owned by userID. Each tag id must resolve to an
// existing tag.
func (uc *ProjectUseCase) Create(in ProjectCreate, userID string, tagIDs []string) (*entities.Project, error) {
	resolved, err := resolveTags(uc.tags, tagIDs)
	if err != nil {
		return nil, err
	}
	project := &entities.Project{
		Name:        in.Name,
		Description: in.Description,
		UserID:      userID,
	}
	if err := uc.projects.Create(project); err != nil {
		return nil, err
	}
	for _, tag := range resolved {
		if err := uc.projects.AddTag(project.ID, tag.ID); err != nil {
			return nil, err
		}
	}
	return project, nil
}

func (uc *ProjectUseCase) Get(id string) (*entities.Project, error) {
	project, err := uc.projects.GetByID(id)
	if err != nil {
		return nil, asNotFound(err, "project not found")
	}
	return project, nil
}

// GetAuthorized loads the project and verifies ownership.
func (uc *ProjectUseCase) GetAuthorized(id, userID string) (*entities.Project, error) {
	project, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, errs.Forbidden("not authorized to access this project")
	}
	return project, nil
}

func (uc *ProjectUseCase) ListByUser(userID string, skip, limit int) ([]entities.Project, error) {
	return uc.projects.GetByUserID(userID, skip, limit)
}

func (uc *ProjectUseCase) Search(query string, skip, limit int) ([]entities.Project, error) {
	return uc.projects.Search(query, skip, limit)
}

func (uc *ProjectUseCase) Update(id string, in ProjectUpdate, userID string) (*entities.Project, error) {
	project, err := uc.GetAuthorized(id, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		project.Name = *in.Name
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if err := uc.projects.Update(project); err != nil {
		return nil, err
	}
	return project, nil
}

func (uc *ProjectUseCase) Delete(id, userID string) error {
	if _, err := uc.GetAuthorized(id, userID); err != nil {
		return err
	}
	return uc.projects.Delete(id)
}

// AddTags attaches the given tags; attaching an already-attached tag is a
// no-op.
func (uc *ProjectUseCase) AddTags(id string, tagIDs []string, userID string) (*entities.Project, error) {
	project, err := uc.GetAuthorized(id, userID)
	if err != nil {
		return nil, err
	}
	resolved, err := resolveTags(uc.tags, tagIDs)
	if err != nil {
		return nil, err
	}
	for _, tag := range resolved {
		if err := uc.projects.AddTag(project.ID, tag.ID); err != nil {
			return nil, err
		}
	}
	return project, nil
}

// RemoveTags detaches the given tags; ids not currently attached are
// skipped silently.
func (uc *ProjectUseCase) RemoveTags(id string, tagIDs []string, userID string) (*entities.Project, error) {
	project, err := uc.GetAuthorized(id, userID)
	if err != nil {
		return nil, err
	}
	for _, tagID := range tagIDs {
		if err := uc.projects.RemoveTag(project.ID, tagID); err != nil {
			return nil, err
		}
	}
	return project, nil
}

func (uc *ProjectUseCase) GetTags(id, userID string) ([]entities.Tag, error) {
	project, err := uc.GetAuthorized(id, userID)
	if err != nil {
		return nil, err
	}
	return uc.projects.GetTags(project.ID)
}

// resolveTags looks up every tag id, failing with NotFound naming the
// first missing one.
func resolveTags(tags repositories.TagRepository, tagIDs []string) ([]entities.Tag, error) {
	resolved := make([]entities.Tag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		tag, err := tags.GetByID(tagID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.NotFoundf("tag with id %s not found", tagID)
			}
			return nil, err
		}
		resolved = append(resolved, *tag)
	}
	return resolved, nil
}
