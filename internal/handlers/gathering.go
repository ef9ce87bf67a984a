package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/fsauth/gathering-api/internal/dto"
	apierrors "github.com/fsauth/gathering-api/internal/errors"
	"github.com/fsauth/gathering-api/internal/services"
	"github.com/gin-gonic/gin"
)

// GatheringHandler coordinates gathering HTTP handlers.
type GatheringHandler struct {
	gatheringService *services.GatheringService
	admissionService *services.AdmissionService
}

// NewGatheringHandler creates a new GatheringHandler.
func NewGatheringHandler(
	gatheringService *services.GatheringService,
	admissionService *services.AdmissionService,
) *GatheringHandler {
	return &GatheringHandler{
		gatheringService: gatheringService,
		admissionService: admissionService,
	}
}

type gatheringRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
	Location    string    `json:"location" binding:"required,max=255"`
	Quota       *int      `json:"quota"`
	IsActive    bool      `json:"is_active"`
}

func (r gatheringRequest) toInput() services.GatheringInput {
	return services.GatheringInput{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Location:    r.Location,
		Quota:       r.Quota,
		IsActive:    r.IsActive,
	}
}

// CreateGathering creates a new gathering
func (h *GatheringHandler) CreateGathering(c *gin.Context) {
	var req gatheringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	gathering, err := h.gatheringService.CreateGathering(req.toInput())
	if err != nil {
		respondGatheringError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGatheringDTO(*gathering))
}

// ListGatherings returns all gatherings
func (h *GatheringHandler) ListGatherings(c *gin.Context) {
	gatherings, err := h.gatheringService.ListGatherings()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch gatherings")
		return
	}

	gatheringDTOs := make([]dto.GatheringDTO, len(gatherings))
	for i, g := range gatherings {
		gatheringDTOs[i] = dto.ToGatheringDTO(g)
	}

	c.JSON(http.StatusOK, gin.H{
		"gatherings": gatheringDTOs,
	})
}

// GetGathering returns a single gathering
func (h *GatheringHandler) GetGathering(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	gathering, err := h.gatheringService.GetGathering(id)
	if err != nil {
		respondGatheringError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGatheringDTO(*gathering))
}

// GetAvailability reports the gathering's quota and confirmed count
func (h *GatheringHandler) GetAvailability(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	availability, err := h.admissionService.Availability(id)
	if err != nil {
		respondGatheringError(c, err)
		return
	}

	c.JSON(http.StatusOK, availability)
}

// UpdateGathering updates a gathering
func (h *GatheringHandler) UpdateGathering(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req gatheringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	gathering, err := h.gatheringService.UpdateGathering(id, req.toInput())
	if err != nil {
		respondGatheringError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGatheringDTO(*gathering))
}

// DeleteGathering deletes a gathering and its registrations
func (h *GatheringHandler) DeleteGathering(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.gatheringService.DeleteGathering(id); err != nil {
		respondGatheringError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Gathering deleted successfully",
	})
}

func respondGatheringError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGatheringNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidGatheringTitle),
		errors.Is(err, services.ErrInvalidGatheringDate),
		errors.Is(err, services.ErrInvalidQuota):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
