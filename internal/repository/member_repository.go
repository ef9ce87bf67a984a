package repository

import (
	"github.com/fsauth/gathering-api/internal/models"
	"gorm.io/gorm"
)

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

// Create creates a new member
func (r *GormMemberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// FindByID finds a member by ID with its group preloaded
func (r *GormMemberRepository) FindByID(id uint64) (*models.Member, error) {
	var member models.Member
	if err := r.db.Preload("Group").First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// List returns members ordered by name, optionally scoped to a group
func (r *GormMemberRepository) List(groupID *uint64) ([]models.Member, error) {
	var members []models.Member
	query := r.db.Preload("Group")
	if groupID != nil {
		query = query.Where("group_id = ?", *groupID)
	}
	if err := query.Order("name ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// Update updates a member
func (r *GormMemberRepository) Update(member *models.Member) error {
	return r.db.Save(member).Error
}

// Delete soft deletes a member
func (r *GormMemberRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Member{}, id).Error
}
