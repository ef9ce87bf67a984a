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
	ErrInvalidMemberName      = errors.New("member name cannot be empty")
	ErrInvalidMemberEmail     = errors.New("member email is not a valid email address")
	ErrInvalidMemberRole      = errors.New("invalid member role")
	ErrMemberHasRegistrations = errors.New("member has registrations and cannot be deleted")
)

// MemberService provides business logic for member operations.
type MemberService struct {
	memberRepo repository.MemberRepository
	groupRepo  repository.GroupRepository
	regRepo    repository.RegistrationRepository
}

// NewMemberService creates a new MemberService.
func NewMemberService(
	memberRepo repository.MemberRepository,
	groupRepo repository.GroupRepository,
	regRepo repository.RegistrationRepository,
) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		groupRepo:  groupRepo,
		regRepo:    regRepo,
	}
}

// MemberInput represents parameters to create or update a member.
type MemberInput struct {
	Name    string
	Email   string
	Phone   string
	GroupID *uint64
	Role    models.MemberRole
}

func (s *MemberService) validate(input *MemberInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if input.Name == "" {
		return ErrInvalidMemberName
	}
	if !isValidEmail(input.Email) {
		return ErrInvalidMemberEmail
	}
	if input.Role == "" {
		input.Role = models.MemberRoleMember
	}
	switch input.Role {
	case models.MemberRoleAdmin, models.MemberRoleModerator, models.MemberRoleMember:
	default:
		return ErrInvalidMemberRole
	}

	if input.GroupID != nil {
		if _, err := s.groupRepo.FindByID(*input.GroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupNotFound
			}
			return fmt.Errorf("failed to find group: %w", err)
		}
	}
	return nil
}

// CreateMember creates a new member.
func (s *MemberService) CreateMember(input MemberInput) (*models.Member, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	member := &models.Member{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		GroupID: input.GroupID,
		Role:    input.Role,
	}

	if err := s.memberRepo.Create(member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return member, nil
}

// ListMembers returns members, optionally scoped to a group.
func (s *MemberService) ListMembers(groupID *uint64) ([]models.Member, error) {
	members, err := s.memberRepo.List(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// GetMember returns a member by ID.
func (s *MemberService) GetMember(id uint64) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return member, nil
}

// UpdateMember updates a member.
func (s *MemberService) UpdateMember(id uint64, input MemberInput) (*models.Member, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	member, err := s.GetMember(id)
	if err != nil {
		return nil, err
	}

	member.Name = input.Name
	member.Email = input.Email
	member.Phone = input.Phone
	member.GroupID = input.GroupID
	member.Role = input.Role
	member.Group = nil // force the association to reload from GroupID

	if err := s.memberRepo.Update(member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	return s.GetMember(id)
}

// DeleteMember deletes a member. Deletion is refused while the member
// holds non-cancelled registrations; those must be cancelled first.
func (s *MemberService) DeleteMember(id uint64) error {
	if _, err := s.GetMember(id); err != nil {
		return err
	}

	active, err := s.regRepo.CountActiveByMember(id)
	if err != nil {
		return fmt.Errorf("failed to check registrations: %w", err)
	}
	if active > 0 {
		return ErrMemberHasRegistrations
	}

	if err := s.memberRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
