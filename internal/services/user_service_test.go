package services

import (
	"testing"

	"github.com/fsauth/gathering-api/internal/models"
	"github.com/fsauth/gathering-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUserService(t *testing.T) *UserService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewUserService(repository.NewUserRepository(db))
}

func TestUserService_CreateUser(t *testing.T) {
	svc := setupUserService(t)

	user, err := svc.CreateUser(UserInput{
		Name:     "Admin",
		Email:    "Admin@Example.com",
		Password: "supersecret",
		Role:     models.UserRoleAdmin,
	})
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", user.Email)
	require.Equal(t, models.UserRoleAdmin, user.Role)
	require.Equal(t, models.UserStatusActive, user.Status)
	require.NotEqual(t, "supersecret", user.PasswordHash)

	_, err = svc.CreateUser(UserInput{
		Name:     "Other",
		Email:    "admin@example.com",
		Password: "supersecret",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	svc := setupUserService(t)

	_, err := svc.CreateUser(UserInput{
		Name:     "Bad Role",
		Email:    "bad@example.com",
		Password: "supersecret",
		Role:     models.UserRole("superuser"),
	})
	require.ErrorIs(t, err, ErrInvalidUserRole)

	_, err = svc.CreateUser(UserInput{
		Name:     "Bad Status",
		Email:    "bad@example.com",
		Password: "supersecret",
		Status:   models.UserStatus("suspended"),
	})
	require.ErrorIs(t, err, ErrInvalidUserStatus)

	_, err = svc.CreateUser(UserInput{
		Name:     "Short",
		Email:    "short@example.com",
		Password: "short",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestUserService_UpdateUser(t *testing.T) {
	svc := setupUserService(t)

	user, err := svc.CreateUser(UserInput{
		Name:     "User",
		Email:    "user@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	originalHash := user.PasswordHash

	// Empty password keeps the current hash.
	updated, err := svc.UpdateUser(user.ID, UserInput{
		Name:   "Renamed",
		Email:  "user@example.com",
		Status: models.UserStatusInactive,
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, models.UserStatusInactive, updated.Status)
	require.Equal(t, originalHash, updated.PasswordHash)

	updated, err = svc.UpdateUser(user.ID, UserInput{
		Name:     "Renamed",
		Email:    "user@example.com",
		Password: "newpassword",
	})
	require.NoError(t, err)
	require.NotEqual(t, originalHash, updated.PasswordHash)
}

func TestUserService_UpdateUser_EmailTaken(t *testing.T) {
	svc := setupUserService(t)

	_, err := svc.CreateUser(UserInput{
		Name:     "First",
		Email:    "first@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	second, err := svc.CreateUser(UserInput{
		Name:     "Second",
		Email:    "second@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = svc.UpdateUser(second.ID, UserInput{
		Name:  "Second",
		Email: "first@example.com",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_DeleteUser_ProtectsAdmins(t *testing.T) {
	svc := setupUserService(t)

	admin, err := svc.CreateUser(UserInput{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "supersecret",
		Role:     models.UserRoleAdmin,
	})
	require.NoError(t, err)

	user, err := svc.CreateUser(UserInput{
		Name:     "User",
		Email:    "user@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteUser(admin.ID), ErrCannotDeleteAdmin)
	require.NoError(t, svc.DeleteUser(user.ID))
	require.ErrorIs(t, svc.DeleteUser(user.ID), ErrUserNotFound)
	require.ErrorIs(t, svc.DeleteUser(9999), ErrUserNotFound)
}
