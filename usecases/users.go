package usecases

import (
	"errors"

	"iot-manager/auth"
	"iot-manager/entities"
	"iot-manager/errs"
	"iot-manager/repositories"

	"gorm.io/gorm"
)

type UserUseCase struct {
	users repositories.UserRepository
}

func NewUserUseCase(users repositories.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

type UserRegister struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

// Register creates a user with a bcrypt-hashed password. Username and
// email must both be unused.
func (uc *UserUseCase) Register(in UserRegister) (*entities.User, error) {
	if _, err := uc.users.GetByUsername(in.Username); err == nil {
		return nil, errs.Conflict("username already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := uc.users.GetByEmail(in.Email); err == nil {
		return nil, errs.Conflict("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entities.User{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: hash,
		IsActive:       true,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair for the token endpoint.
func (uc *UserUseCase) Authenticate(username, password string) (*entities.User, error) {
	user, err := uc.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Unauthenticated("incorrect username or password")
		}
		return nil, err
	}
	if !auth.CheckPassword(user.HashedPassword, password) {
		return nil, errs.Unauthenticated("incorrect username or password")
	}
	return user, nil
}

func (uc *UserUseCase) Get(id string) (*entities.User, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, asNotFound(err, "user not found")
	}
	return user, nil
}

func (uc *UserUseCase) List(skip, limit int) ([]entities.User, error) {
	return uc.users.GetAll(skip, limit)
}

// Update applies only the fields present in the patch. A new password is
// re-hashed; the caller-must-be-self rule is enforced at the boundary.
func (uc *UserUseCase) Update(id string, in UserUpdate) (*entities.User, error) {
	user, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hash
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) Delete(id string) error {
	if _, err := uc.Get(id); err != nil {
		return err
	}
	return uc.users.Delete(id)
}
