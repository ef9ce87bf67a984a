package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fsauth/gathering-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockRepo wires a RegistrationRepository against a mocked
// connection so the SQL issued by Admit can be asserted directly.
func setupMockRepo(t *testing.T) (RegistrationRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	return NewRegistrationRepository(db), mock
}

// Admit must take the gathering row lock before any check runs; without
// FOR UPDATE two concurrent admissions could both pass the quota check.
func TestRegistrationRepository_Admit_LocksGatheringRow(t *testing.T) {
	repo, mock := setupMockRepo(t)

	quota := 1

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "gatherings" WHERE .+ FOR UPDATE`).
		WithArgs(uint64(1), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "quota", "is_active"}).
			AddRow(1, quota, true))
	mock.ExpectQuery(`SELECT \* FROM "registrations" WHERE gathering_id = .+ AND member_id = `).
		WithArgs(uint64(1), uint64(2), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "registrations"`).
		WithArgs(uint64(1), string(models.RegistrationStatusConfirmed)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.Admit(&models.Registration{
		GatheringID:      1,
		MemberID:         2,
		Status:           models.RegistrationStatusConfirmed,
		ConfirmationCode: "code",
		RegisteredAt:     time.Now(),
	})
	require.ErrorIs(t, err, ErrQuotaExceeded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepository_Admit_MissingGathering(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "gatherings" WHERE .+ FOR UPDATE`).
		WithArgs(uint64(42), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.Admit(&models.Registration{
		GatheringID:      42,
		MemberID:         2,
		Status:           models.RegistrationStatusConfirmed,
		ConfirmationCode: "code",
		RegisteredAt:     time.Now(),
	})
	require.ErrorIs(t, err, ErrGatheringMissing)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A duplicate-key failure on the insert means a concurrent writer beat
// this transaction to the pair; it surfaces as a retryable conflict.
func TestRegistrationRepository_Admit_DuplicateKeyIsConflict(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "gatherings" WHERE .+ FOR UPDATE`).
		WithArgs(uint64(1), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active"}).AddRow(1, true))
	mock.ExpectQuery(`SELECT \* FROM "registrations" WHERE gathering_id = .+ AND member_id = `).
		WithArgs(uint64(1), uint64(2), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "registrations"`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	err := repo.Admit(&models.Registration{
		GatheringID:      1,
		MemberID:         2,
		Status:           models.RegistrationStatusConfirmed,
		ConfirmationCode: "code",
		RegisteredAt:     time.Now(),
	})
	require.ErrorIs(t, err, ErrRegistrationConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}
