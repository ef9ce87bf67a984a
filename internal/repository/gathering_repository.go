package repository

import (
	"github.com/fsauth/gathering-api/internal/models"
	"gorm.io/gorm"
)

// GormGatheringRepository is a GORM implementation of GatheringRepository
type GormGatheringRepository struct {
	db *gorm.DB
}

// NewGatheringRepository creates a new GatheringRepository
func NewGatheringRepository(db *gorm.DB) GatheringRepository {
	return &GormGatheringRepository{db: db}
}

// Create creates a new gathering
func (r *GormGatheringRepository) Create(gathering *models.Gathering) error {
	return r.db.Create(gathering).Error
}

// FindByID finds a gathering by ID
func (r *GormGatheringRepository) FindByID(id uint64) (*models.Gathering, error) {
	var gathering models.Gathering
	if err := r.db.First(&gathering, id).Error; err != nil {
		return nil, err
	}
	return &gathering, nil
}

// List returns all gatherings, most recent date first
func (r *GormGatheringRepository) List() ([]models.Gathering, error) {
	var gatherings []models.Gathering
	if err := r.db.Order("date DESC").Find(&gatherings).Error; err != nil {
		return nil, err
	}
	return gatherings, nil
}

// ListActive returns active gatherings, soonest date first
func (r *GormGatheringRepository) ListActive() ([]models.Gathering, error) {
	var gatherings []models.Gathering
	if err := r.db.
		Where("is_active = ?", true).
		Order("date ASC").
		Find(&gatherings).Error; err != nil {
		return nil, err
	}
	return gatherings, nil
}

// Update updates a gathering
func (r *GormGatheringRepository) Update(gathering *models.Gathering) error {
	return r.db.Save(gathering).Error
}

// Delete deletes a gathering and all of its registrations in a transaction
func (r *GormGatheringRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gathering_id = ?", id).
			Delete(&models.Registration{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Gathering{}, id).Error
	})
}
