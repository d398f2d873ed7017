package repositories

import (
	"time"

	"iot-manager/db"
	"iot-manager/entities"

	"gorm.io/gorm"
)

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) Create(user *entities.User) error {
	return r.db.GetDB().Create(user).Error
}

func (r *userPgRepository) GetByID(id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.GetDB().Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPgRepository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.GetDB().Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPgRepository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.GetDB().Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPgRepository) GetAll(skip, limit int) ([]entities.User, error) {
	var users []entities.User
	err := r.db.GetDB().Scopes(paginate(skip, limit)).Find(&users).Error
	return users, err
}

func (r *userPgRepository) Update(user *entities.User) error {
	user.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return r.db.GetDB().Save(user).Error
}

// Delete removes the user and the whole ownership subtree: projects,
// devices, sensors, readings, commands and tag associations, children
// before parents, in one transaction.
func (r *userPgRepository) Delete(id string) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		var projectIDs []string
		if err := tx.Model(&entities.Project{}).Where("user_id = ?", id).Pluck("id", &projectIDs).Error; err != nil {
			return err
		}
		for _, projectID := range projectIDs {
			if err := deleteProjectTree(tx, projectID); err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&entities.User{}).Error
	})
}
