package dto

import (
	"time"

	"github.com/fsauth/gathering-api/internal/models"
)

// UserDTO represents a dashboard account in API responses
type UserDTO struct {
	ID        uint64            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      models.UserRole   `json:"role"`
	Status    models.UserStatus `json:"status"`
	LastLogin *time.Time        `json:"last_login"`
	CreatedAt time.Time         `json:"created_at"`
}

// GroupDTO represents a group in API responses
type GroupDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// MemberDTO represents a member in API responses
type MemberDTO struct {
	ID        uint64            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone,omitempty"`
	GroupID   *uint64           `json:"group_id"`
	GroupName string            `json:"group_name,omitempty"`
	Role      models.MemberRole `json:"role"`
	JoinedAt  time.Time         `json:"joined_at"`
}

// GatheringDTO represents a gathering in API responses
type GatheringDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Quota       *int      `json:"quota"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
	}
}

// ToGroupDTO converts a Group model and its member count to GroupDTO
func ToGroupDTO(group models.Group, memberCount int64) GroupDTO {
	return GroupDTO{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		MemberCount: memberCount,
		CreatedAt:   group.CreatedAt,
	}
}

// ToMemberDTO converts a Member model to MemberDTO
func ToMemberDTO(member models.Member) MemberDTO {
	dto := MemberDTO{
		ID:       member.ID,
		Name:     member.Name,
		Email:    member.Email,
		Phone:    member.Phone,
		GroupID:  member.GroupID,
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}

	// Include group name if preloaded
	if member.Group != nil {
		dto.GroupName = member.Group.Name
	}

	return dto
}

// ToGatheringDTO converts a Gathering model to GatheringDTO
func ToGatheringDTO(gathering models.Gathering) GatheringDTO {
	return GatheringDTO{
		ID:          gathering.ID,
		Title:       gathering.Title,
		Description: gathering.Description,
		Date:        gathering.Date,
		Location:    gathering.Location,
		Quota:       gathering.Quota,
		IsActive:    gathering.IsActive,
		CreatedAt:   gathering.CreatedAt,
	}
}
