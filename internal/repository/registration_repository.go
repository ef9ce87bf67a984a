package repository

import (
	"errors"
	"fmt"

	"github.com/fsauth/gathering-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrGatheringMissing is returned when the admitted gathering does not exist.
	ErrGatheringMissing = errors.New("registration repository: gathering not found")
	// ErrRegistrationMissing is returned when a registration lookup finds nothing.
	ErrRegistrationMissing = errors.New("registration repository: registration not found")
	// ErrDuplicateRegistration is returned when the member already holds a
	// non-cancelled registration for the gathering.
	ErrDuplicateRegistration = errors.New("registration repository: member already registered")
	// ErrQuotaExceeded is returned when admitting would push the confirmed
	// count past the gathering's quota.
	ErrQuotaExceeded = errors.New("registration repository: gathering quota exceeded")
	// ErrRegistrationConflict is returned when the storage layer detects a
	// concurrent write for the same (gathering, member) pair. Callers may
	// retry the admission once.
	ErrRegistrationConflict = errors.New("registration repository: concurrent registration conflict")
)

// GormRegistrationRepository is a GORM implementation of RegistrationRepository
type GormRegistrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &GormRegistrationRepository{db: db}
}

// Admit performs the check-and-create sequence as one transaction.
//
// Two admissions racing on the same gathering must not both pass the
// duplicate and capacity checks and then both write, so the gathering
// row is locked with SELECT ... FOR UPDATE before any check runs. A
// second transaction admitting to the same gathering blocks on that
// lock until the first commits, and then observes its writes. The
// unique index on (gathering_id, member_id) backs this up: if a write
// slips past on a store without row locks, the insert fails with a
// duplicate-key error which is surfaced as ErrRegistrationConflict for
// a single retry.
func (r *GormRegistrationRepository) Admit(reg *models.Registration) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var gathering models.Gathering
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&gathering, reg.GatheringID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGatheringMissing
			}
			return fmt.Errorf("lock gathering: %w", err)
		}

		// One row per pair, cancelled or not. A cancelled or
		// soft-deleted row is revived below instead of inserting a
		// second row, which keeps the unique index strict.
		var existing models.Registration
		err := tx.Unscoped().
			Where("gathering_id = ? AND member_id = ?", reg.GatheringID, reg.MemberID).
			First(&existing).Error
		switch {
		case err == nil:
			if !existing.DeletedAt.Valid && existing.Status != models.RegistrationStatusCancelled {
				return ErrDuplicateRegistration
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first registration for this pair
		default:
			return fmt.Errorf("check existing registration: %w", err)
		}

		if reg.Status == models.RegistrationStatusConfirmed && gathering.Quota != nil {
			confirmed, err := countConfirmed(tx, reg.GatheringID)
			if err != nil {
				return fmt.Errorf("count confirmed registrations: %w", err)
			}
			if confirmed >= int64(*gathering.Quota) {
				return ErrQuotaExceeded
			}
		}

		if existing.ID != 0 {
			updates := map[string]interface{}{
				"status":            reg.Status,
				"confirmation_code": reg.ConfirmationCode,
				"registered_at":     reg.RegisteredAt,
				"deleted_at":        nil,
			}
			if err := tx.Unscoped().Model(&models.Registration{}).
				Where("id = ?", existing.ID).
				Updates(updates).Error; err != nil {
				return fmt.Errorf("revive registration: %w", err)
			}
			reg.ID = existing.ID
			return nil
		}

		return tx.Create(reg).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrRegistrationConflict
		}
		return err
	}
	return nil
}

// FindByID finds a registration by ID with optional preloading
func (r *GormRegistrationRepository) FindByID(id uint64, preload ...string) (*models.Registration, error) {
	var reg models.Registration
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&reg, id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// FindActive finds the non-cancelled registration for a pair, if any
func (r *GormRegistrationRepository) FindActive(gatheringID, memberID uint64) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.
		Where("gathering_id = ? AND member_id = ? AND status <> ?",
			gatheringID, memberID, models.RegistrationStatusCancelled).
		First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// CountConfirmed counts confirmed registrations for a gathering
func (r *GormRegistrationRepository) CountConfirmed(gatheringID uint64) (int64, error) {
	return countConfirmed(r.db, gatheringID)
}

func countConfirmed(db *gorm.DB, gatheringID uint64) (int64, error) {
	var count int64
	err := db.Model(&models.Registration{}).
		Where("gathering_id = ? AND status = ?", gatheringID, models.RegistrationStatusConfirmed).
		Count(&count).Error
	return count, err
}

// CountActiveByMember counts a member's non-cancelled registrations
func (r *GormRegistrationRepository) CountActiveByMember(memberID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Registration{}).
		Where("member_id = ? AND status <> ?", memberID, models.RegistrationStatusCancelled).
		Count(&count).Error
	return count, err
}

// List retrieves registrations with filtering and pagination
func (r *GormRegistrationRepository) List(filter RegistrationFilter) ([]models.Registration, int64, error) {
	var regs []models.Registration

	query := r.db.Model(&models.Registration{})

	if filter.GatheringID != nil {
		query = query.Where("gathering_id = ?", *filter.GatheringID)
	}
	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("registered_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.
		Preload("Gathering").
		Preload("Member").
		Preload("Member.Group").
		Find(&regs).Error; err != nil {
		return nil, 0, err
	}

	return regs, total, nil
}

// UpdateStatus transitions a registration's status. Promoting to
// confirmed consumes a capacity slot, so the gathering row is locked
// and the quota re-checked before the write.
func (r *GormRegistrationRepository) UpdateStatus(id uint64, status models.RegistrationStatus) (*models.Registration, error) {
	var reg models.Registration
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reg, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationMissing
			}
			return fmt.Errorf("find registration: %w", err)
		}

		if reg.Status == status {
			return nil
		}

		var gathering models.Gathering
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&gathering, reg.GatheringID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGatheringMissing
			}
			return fmt.Errorf("lock gathering: %w", err)
		}

		if status == models.RegistrationStatusConfirmed && gathering.Quota != nil {
			confirmed, err := countConfirmed(tx, reg.GatheringID)
			if err != nil {
				return fmt.Errorf("count confirmed registrations: %w", err)
			}
			if confirmed >= int64(*gathering.Quota) {
				return ErrQuotaExceeded
			}
		}

		reg.Status = status
		return tx.Save(&reg).Error
	})
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Delete soft deletes a registration
func (r *GormRegistrationRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Registration{}, id).Error
}
