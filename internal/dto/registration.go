package dto

import (
	"time"

	"github.com/fsauth/gathering-api/internal/models"
)

// RegistrationDTO represents a registration in API responses
type RegistrationDTO struct {
	ID               uint64                    `json:"id"`
	GatheringID      uint64                    `json:"gathering_id"`
	GatheringTitle   string                    `json:"gathering_title,omitempty"`
	MemberID         uint64                    `json:"member_id"`
	MemberName       string                    `json:"member_name,omitempty"`
	GroupName        string                    `json:"group_name,omitempty"`
	Status           models.RegistrationStatus `json:"status"`
	ConfirmationCode string                    `json:"confirmation_code"`
	RegisteredAt     time.Time                 `json:"registered_at"`
}

// RegistrationListResponse represents a paginated list of registrations
type RegistrationListResponse struct {
	Registrations []RegistrationDTO `json:"registrations"`
	Page          int               `json:"page"`
	PageSize      int               `json:"page_size"`
	TotalCount    int64             `json:"total_count"`
	TotalPages    int               `json:"total_pages"`
}

// ToRegistrationDTO converts a Registration model to RegistrationDTO
func ToRegistrationDTO(reg models.Registration) RegistrationDTO {
	dto := RegistrationDTO{
		ID:               reg.ID,
		GatheringID:      reg.GatheringID,
		MemberID:         reg.MemberID,
		Status:           reg.Status,
		ConfirmationCode: reg.ConfirmationCode,
		RegisteredAt:     reg.RegisteredAt,
	}

	// Include related names if preloaded
	if reg.Gathering.ID != 0 {
		dto.GatheringTitle = reg.Gathering.Title
	}
	if reg.Member.ID != 0 {
		dto.MemberName = reg.Member.Name
		if reg.Member.Group != nil {
			dto.GroupName = reg.Member.Group.Name
		}
	}

	return dto
}

// ToRegistrationListResponse converts registrations to a paginated response
func ToRegistrationListResponse(regs []models.Registration, page, pageSize int, totalCount int64) RegistrationListResponse {
	items := make([]RegistrationDTO, len(regs))
	for i, reg := range regs {
		items[i] = ToRegistrationDTO(reg)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return RegistrationListResponse{
		Registrations: items,
		Page:          page,
		PageSize:      pageSize,
		TotalCount:    totalCount,
		TotalPages:    totalPages,
	}
}
