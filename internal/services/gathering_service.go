package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsauth/gathering-api/internal/models"
	"github.com/fsauth/gathering-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidGatheringTitle = errors.New("gathering title cannot be empty")
	ErrInvalidGatheringDate  = errors.New("gathering date is required")
	ErrInvalidQuota          = errors.New("quota must be a positive integer")
)

// GatheringService provides business logic for gathering operations.
type GatheringService struct {
	gatheringRepo repository.GatheringRepository
}

// NewGatheringService creates a new GatheringService.
func NewGatheringService(gatheringRepo repository.GatheringRepository) *GatheringService {
	return &GatheringService{gatheringRepo: gatheringRepo}
}

// GatheringInput represents parameters to create or update a gathering.
type GatheringInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	Quota       *int
	IsActive    bool
}

func validateGathering(input *GatheringInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return ErrInvalidGatheringTitle
	}
	if input.Date.IsZero() {
		return ErrInvalidGatheringDate
	}
	if input.Quota != nil && *input.Quota <= 0 {
		return ErrInvalidQuota
	}
	return nil
}

// CreateGathering creates a new gathering.
func (s *GatheringService) CreateGathering(input GatheringInput) (*models.Gathering, error) {
	if err := validateGathering(&input); err != nil {
		return nil, err
	}

	gathering := &models.Gathering{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Location:    input.Location,
		Quota:       input.Quota,
		IsActive:    input.IsActive,
	}

	if err := s.gatheringRepo.Create(gathering); err != nil {
		return nil, fmt.Errorf("failed to create gathering: %w", err)
	}
	return gathering, nil
}

// ListGatherings returns all gatherings.
func (s *GatheringService) ListGatherings() ([]models.Gathering, error) {
	gatherings, err := s.gatheringRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list gatherings: %w", err)
	}
	return gatherings, nil
}

// ListActiveGatherings returns gatherings open for public registration.
func (s *GatheringService) ListActiveGatherings() ([]models.Gathering, error) {
	gatherings, err := s.gatheringRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list active gatherings: %w", err)
	}
	return gatherings, nil
}

// GetGathering returns a gathering by ID.
func (s *GatheringService) GetGathering(id uint64) (*models.Gathering, error) {
	gathering, err := s.gatheringRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGatheringNotFound
		}
		return nil, fmt.Errorf("failed to find gathering: %w", err)
	}
	return gathering, nil
}

// UpdateGathering updates a gathering.
func (s *GatheringService) UpdateGathering(id uint64, input GatheringInput) (*models.Gathering, error) {
	if err := validateGathering(&input); err != nil {
		return nil, err
	}

	gathering, err := s.GetGathering(id)
	if err != nil {
		return nil, err
	}

	gathering.Title = input.Title
	gathering.Description = input.Description
	gathering.Date = input.Date
	gathering.Location = input.Location
	gathering.Quota = input.Quota
	gathering.IsActive = input.IsActive

	if err := s.gatheringRepo.Update(gathering); err != nil {
		return nil, fmt.Errorf("failed to update gathering: %w", err)
	}
	return gathering, nil
}

// DeleteGathering deletes a gathering together with its registrations.
func (s *GatheringService) DeleteGathering(id uint64) error {
	if _, err := s.GetGathering(id); err != nil {
		return err
	}

	if err := s.gatheringRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete gathering: %w", err)
	}
	return nil
}
