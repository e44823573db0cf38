package services

import (
	"errors"

	"github.com/shashiranjanraj/ordercrm/app/models"
	"github.com/shashiranjanraj/ordercrm/app/repositories"
	"github.com/shashiranjanraj/ordercrm/pkg/auth"
	"github.com/shashiranjanraj/ordercrm/pkg/validate"
)

// ErrInvalidCredentials covers both unknown username and wrong password,
// so a caller cannot probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RegisterInput is the account sign-up form.
type RegisterInput struct {
	Username             string `form:"username" validate:"required,min=3,max=150"`
	Password             string `form:"password" validate:"required,min=8,confirmed"`
	PasswordConfirmation string `form:"password_confirmation" validate:"required"`
}

// AuthService implements registration and credential verification.
type AuthService struct {
	users repositories.UserRepository
}

func NewAuthService(users repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register validates the sign-up form, then creates the User (role
// customer) and its linked Customer record atomically. On validation
// failure nothing is persisted and the field errors are returned.
func (s *AuthService) Register(in RegisterInput) (models.User, validate.Errors, error) {
	if errs := validate.Struct(&in); errs.HasErrors() {
		return models.User{}, errs, nil
	}

	if _, err := s.users.FindByUsername(in.Username); err == nil {
		return models.User{}, validate.Errors{"username": "The username is already taken."}, nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, nil, err
	}

	user := models.User{
		Username: in.Username,
		Password: hash,
		Role:     models.RoleCustomer,
	}
	customer := models.Customer{Name: in.Username}

	if err := s.users.CreateWithCustomer(&user, &customer); err != nil {
		return models.User{}, nil, err
	}

	return user, nil, nil
}

// Login verifies the credentials. Unknown username and wrong password
// are indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (models.User, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}
