package usecases

import (
	"errors"

	"iot-manager/entities"
	"iot-manager/errs"
	"iot-manager/repositories"

	"gorm.io/gorm"
)

// TagUseCase manages shared tags. Tags are not owner-scoped: any
// authenticated user may manage any tag.
type TagUseCase struct {
	tags repositories.TagRepository
}

func NewTagUseCase(tags repositories.TagRepository) *TagUseCase {
	return &TagUseCase{tags: tags}
}

type TagCreate struct {
	Name string `json:"name" binding:"required"`
}

type TagUpdate struct {
	Name *string `json:"name"`
}

func (uc *TagUseCase) Create(in TagCreate) (*entities.Tag, error) {
	if _, err := uc.tags.GetByName(in.Name); err == nil {
		return nil, errs.Conflict("tag with this name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	tag := &entities.Tag{Name: in.Name}
	if err := uc.tags.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (uc *TagUseCase) Get(id string) (*entities.Tag, error) {
	tag, err := uc.tags.GetByID(id)
	if err != nil {
		return nil, asNotFound(err, "tag not found")
	}
	return tag, nil
}

func (uc *TagUseCase) List(skip, limit int) ([]entities.Tag, error) {
	return uc.tags.GetAll(skip, limit)
}

func (uc *TagUseCase) Search(query string, skip, limit int) ([]entities.Tag, error) {
	return uc.tags.Search(query, skip, limit)
}

func (uc *TagUseCase) Update(id string, in TagUpdate) (*entities.Tag, error) {
	tag, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && *in.Name != tag.Name {
		if _, err := uc.tags.GetByName(*in.Name); err == nil {
			return nil, errs.Conflict("tag with this name already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		tag.Name = *in.Name
	}
	if err := uc.tags.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (uc *TagUseCase) Delete(id string) error {
	if _, err := uc.Get(id); err != nil {
		return err
	}
	return uc.tags.Delete(id)
}
