package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsauth/gathering-api/internal/models"
	"github.com/fsauth/gathering-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrInvalidGroupName = errors.New("group name cannot be empty")
)

// GroupService provides business logic for group operations.
type GroupService struct {
	groupRepo repository.GroupRepository
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// GroupInput represents parameters to create or update a group.
type GroupInput struct {
	Name        string
	Description string
}

// CreateGroup creates a new group.
func (s *GroupService) CreateGroup(input GroupInput) (*models.Group, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidGroupName
	}

	group := &models.Group{
		Name:        input.Name,
		Description: input.Description,
	}

	if err := s.groupRepo.Create(group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

// ListGroups returns all groups with member counts.
func (s *GroupService) ListGroups() ([]repository.GroupWithMemberCount, error) {
	groups, err := s.groupRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// GetGroup returns a group by ID.
func (s *GroupService) GetGroup(id uint64) (*models.Group, error) {
	group, err := s.groupRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}
	return group, nil
}

// UpdateGroup updates a group's name and description.
func (s *GroupService) UpdateGroup(id uint64, input GroupInput) (*models.Group, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidGroupName
	}

	group, err := s.GetGroup(id)
	if err != nil {
		return nil, err
	}

	group.Name = input.Name
	group.Description = input.Description
	if err := s.groupRepo.Update(group); err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	return group, nil
}

// DeleteGroup deletes a group. Its members are detached, not deleted,
// so their registrations stay valid.
func (s *GroupService) DeleteGroup(id uint64) error {
	if _, err := s.GetGroup(id); err != nil {
		return err
	}

	if err := s.groupRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}
