package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsauth/gathering-api/internal/constants"
	"github.com/fsauth/gathering-api/internal/models"
	"github.com/fsauth/gathering-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidUserRole   = errors.New("invalid user role")
	ErrInvalidUserStatus = errors.New("invalid user status")
	ErrCannotDeleteAdmin = errors.New("admin users cannot be deleted")
)

// UserService provides admin management of dashboard accounts.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UserInput represents parameters to create or update an account.
// Password is optional on update; empty means keep the current hash.
type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     models.UserRole
	Status   models.UserStatus
}

func validateUser(input *UserInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if input.Role == "" {
		input.Role = models.UserRoleUser
	}
	switch input.Role {
	case models.UserRoleAdmin, models.UserRoleUser:
	default:
		return ErrInvalidUserRole
	}

	if input.Status == "" {
		input.Status = models.UserStatusActive
	}
	switch input.Status {
	case models.UserStatusActive, models.UserStatusInactive:
	default:
		return ErrInvalidUserStatus
	}
	return nil
}

// ListUsers returns all dashboard accounts.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateUser creates an account with an explicit role and status.
func (s *UserService) CreateUser(input UserInput) (*models.User, error) {
	if err := validateUser(&input); err != nil {
		return nil, err
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		Status:       input.Status,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// UpdateUser updates an account. The password is only changed when a
// new one is provided.
func (s *UserService) UpdateUser(id uint64, input UserInput) (*models.User, error) {
	if err := validateUser(&input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if existing, err := s.userRepo.FindByEmail(input.Email); err == nil {
		if existing.ID != id {
			return nil, ErrEmailTaken
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user.Name = input.Name
	user.Email = input.Email
	user.Role = input.Role
	user.Status = input.Status

	if input.Password != "" {
		if len(input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser deletes an account. Admin accounts are protected.
func (s *UserService) DeleteUser(id uint64) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.Role == models.UserRoleAdmin {
		return ErrCannotDeleteAdmin
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
