package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/fsauth/gathering-api/internal/models"
	"github.com/fsauth/gathering-api/internal/repository"
	"github.com/fsauth/gathering-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrGatheringNotFound         = errors.New("gathering not found")
	ErrMemberNotFound            = errors.New("member not found")
	ErrGatheringInactive         = errors.New("gathering is not open for registration")
	ErrAlreadyRegistered         = errors.New("member is already registered for this gathering")
	ErrCapacityExceeded          = errors.New("gathering has reached its maximum capacity")
	ErrRegistrationNotFound      = errors.New("registration not found")
	ErrInvalidRegistrationStatus = errors.New("invalid registration status")
)

// AdmissionService decides whether a (gathering, member) registration
// may be admitted and performs the admission. All mutations of a
// gathering's registration set go through this service; nothing writes
// registrations directly.
type AdmissionService struct {
	regRepo       repository.RegistrationRepository
	gatheringRepo repository.GatheringRepository
	memberRepo    repository.MemberRepository
}

// NewAdmissionService creates a new AdmissionService.
func NewAdmissionService(
	regRepo repository.RegistrationRepository,
	gatheringRepo repository.GatheringRepository,
	memberRepo repository.MemberRepository,
) *AdmissionService {
	return &AdmissionService{
		regRepo:       regRepo,
		gatheringRepo: gatheringRepo,
		memberRepo:    memberRepo,
	}
}

// AdmissionInput represents a registration request.
type AdmissionInput struct {
	GatheringID uint64
	MemberID    uint64
	Status      models.RegistrationStatus

	// PublicFlow marks self-service requests: the gathering must be
	// active and the status is forced to confirmed.
	PublicFlow bool
}

// RequestAdmission validates the request and admits the registration.
//
// Preconditions (no mutation before these pass): the member must exist,
// the gathering must exist, and public requests require an active
// gathering. The uniqueness and capacity checks themselves run inside
// the repository's admission transaction, serialized per gathering, so
// concurrent requests cannot both pass the checks and both write.
//
// A storage-level conflict (two writers raced on the same pair despite
// the lock) is retried exactly once; a second conflict is reported as a
// plain rejection.
func (s *AdmissionService) RequestAdmission(input AdmissionInput) (*models.Registration, error) {
	if _, err := s.memberRepo.FindByID(input.MemberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	gathering, err := s.gatheringRepo.FindByID(input.GatheringID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGatheringNotFound
		}
		return nil, fmt.Errorf("failed to find gathering: %w", err)
	}

	if input.PublicFlow {
		if !gathering.IsActive {
			return nil, ErrGatheringInactive
		}
		input.Status = models.RegistrationStatusConfirmed
	}
	if input.Status == "" {
		input.Status = models.RegistrationStatusConfirmed
	}
	if !models.ValidRegistrationStatus(input.Status) {
		return nil, ErrInvalidRegistrationStatus
	}

	for attempt := 0; ; attempt++ {
		reg := &models.Registration{
			GatheringID:      input.GatheringID,
			MemberID:         input.MemberID,
			Status:           input.Status,
			ConfirmationCode: utils.NewConfirmationCode(),
			RegisteredAt:     time.Now(),
		}

		err := s.regRepo.Admit(reg)
		switch {
		case err == nil:
			return reg, nil
		case errors.Is(err, repository.ErrGatheringMissing):
			return nil, ErrGatheringNotFound
		case errors.Is(err, repository.ErrDuplicateRegistration):
			return nil, ErrAlreadyRegistered
		case errors.Is(err, repository.ErrQuotaExceeded):
			return nil, ErrCapacityExceeded
		case errors.Is(err, repository.ErrRegistrationConflict):
			if attempt == 0 {
				continue
			}
			// The retry conflicted too. The unique key covers the
			// (gathering, member) pair, so the competing writer won
			// the same slot this request wanted.
			return nil, ErrAlreadyRegistered
		default:
			return nil, fmt.Errorf("failed to admit registration: %w", err)
		}
	}
}

// GatheringAvailability reports a gathering's quota and confirmed count.
type GatheringAvailability struct {
	GatheringID    uint64 `json:"gathering_id"`
	Quota          *int   `json:"quota"`
	ConfirmedCount int64  `json:"confirmed_count"`
	Remaining      *int64 `json:"remaining"` // nil = unlimited
}

// Availability returns the current capacity snapshot for a gathering.
// This read is informational; the admitting transaction re-reads the
// count under the gathering lock, so a stale snapshot here can never
// overbook.
func (s *AdmissionService) Availability(gatheringID uint64) (*GatheringAvailability, error) {
	gathering, err := s.gatheringRepo.FindByID(gatheringID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGatheringNotFound
		}
		return nil, fmt.Errorf("failed to find gathering: %w", err)
	}

	confirmed, err := s.regRepo.CountConfirmed(gatheringID)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}

	availability := &GatheringAvailability{
		GatheringID:    gatheringID,
		Quota:          gathering.Quota,
		ConfirmedCount: confirmed,
	}
	if gathering.Quota != nil {
		remaining := int64(*gathering.Quota) - confirmed
		if remaining < 0 {
			remaining = 0
		}
		availability.Remaining = &remaining
	}
	return availability, nil
}

// ListRegistrations returns registrations matching the filter.
func (s *AdmissionService) ListRegistrations(filter repository.RegistrationFilter) ([]models.Registration, int64, error) {
	regs, total, err := s.regRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, total, nil
}

// GetRegistration returns a registration with related data.
func (s *AdmissionService) GetRegistration(id uint64) (*models.Registration, error) {
	reg, err := s.regRepo.FindByID(id, "Gathering", "Member", "Member.Group")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to find registration: %w", err)
	}
	return reg, nil
}

// UpdateStatus moves a registration to the given status. Transitions
// are explicit admin actions; promoting to confirmed re-checks the
// quota, and cancelling frees both the capacity and uniqueness slot
// for the pair.
func (s *AdmissionService) UpdateStatus(id uint64, status models.RegistrationStatus) (*models.Registration, error) {
	if !models.ValidRegistrationStatus(status) {
		return nil, ErrInvalidRegistrationStatus
	}

	reg, err := s.regRepo.UpdateStatus(id, status)
	switch {
	case err == nil:
		return reg, nil
	case errors.Is(err, repository.ErrRegistrationMissing):
		return nil, ErrRegistrationNotFound
	case errors.Is(err, repository.ErrGatheringMissing):
		return nil, ErrGatheringNotFound
	case errors.Is(err, repository.ErrQuotaExceeded):
		return nil, ErrCapacityExceeded
	default:
		return nil, fmt.Errorf("failed to update registration status: %w", err)
	}
}

// DeleteRegistration removes a registration entirely. Admins normally
// cancel instead; deletion exists for cleaning up mistaken entries.
func (s *AdmissionService) DeleteRegistration(id uint64) error {
	if _, err := s.regRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to find registration: %w", err)
	}

	if err := s.regRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return nil
}
