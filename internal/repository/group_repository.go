package repository

import (
	"github.com/fsauth/gathering-api/internal/models"
	"gorm.io/gorm"
)

// GormGroupRepository is a GORM implementation of GroupRepository
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &GormGroupRepository{db: db}
}

// Create creates a new group
func (r *GormGroupRepository) Create(group *models.Group) error {
	return r.db.Create(group).Error
}

// FindByID finds a group by ID
func (r *GormGroupRepository) FindByID(id uint64) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// List returns all groups with their member counts, ordered by name
func (r *GormGroupRepository) List() ([]GroupWithMemberCount, error) {
	var groups []GroupWithMemberCount
	err := r.db.Model(&models.Group{}).
		Select("groups.*, COUNT(members.id) AS member_count").
		Joins("LEFT JOIN members ON members.group_id = groups.id AND members.deleted_at IS NULL").
		Group("groups.id").
		Order("groups.name ASC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// Update updates a group
func (r *GormGroupRepository) Update(group *models.Group) error {
	return r.db.Save(group).Error
}

// Delete detaches all members from the group, then deletes it.
// Members are never deleted with their group.
func (r *GormGroupRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Member{}).
			Where("group_id = ?", id).
			Update("group_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Group{}, id).Error
	})
}
