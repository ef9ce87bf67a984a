package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fsauth/gathering-api/internal/dto"
	apierrors "github.com/fsauth/gathering-api/internal/errors"
	"github.com/fsauth/gathering-api/internal/models"
	"github.com/fsauth/gathering-api/internal/repository"
	"github.com/fsauth/gathering-api/internal/services"
	"github.com/fsauth/gathering-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// RegistrationHandler coordinates admin registration HTTP handlers.
type RegistrationHandler struct {
	admissionService *services.AdmissionService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(admissionService *services.AdmissionService) *RegistrationHandler {
	return &RegistrationHandler{admissionService: admissionService}
}

// CreateRegistration admits a registration on behalf of an admin. Any
// status may be requested; capacity is only consumed by confirmed.
func (h *RegistrationHandler) CreateRegistration(c *gin.Context) {
	type CreateRegistrationRequest struct {
		GatheringID uint64                    `json:"gathering_id" binding:"required"`
		MemberID    uint64                    `json:"member_id" binding:"required"`
		Status      models.RegistrationStatus `json:"status"`
	}

	var req CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	reg, err := h.admissionService.RequestAdmission(services.AdmissionInput{
		GatheringID: req.GatheringID,
		MemberID:    req.MemberID,
		Status:      req.Status,
	})
	if err != nil {
		respondAdmissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRegistrationDTO(*reg))
}

// ListRegistrations returns registrations with filtering and pagination
func (h *RegistrationHandler) ListRegistrations(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.RegistrationFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if raw := c.Query("gathering_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid gathering_id")
			return
		}
		filter.GatheringID = &id
	}
	if raw := c.Query("member_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid member_id")
			return
		}
		filter.MemberID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := models.RegistrationStatus(raw)
		if !models.ValidRegistrationStatus(status) {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		filter.Status = &status
	}

	regs, total, err := h.admissionService.ListRegistrations(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch registrations")
		return
	}

	c.JSON(http.StatusOK, dto.ToRegistrationListResponse(regs, params.Page, params.Limit, total))
}

// GetRegistration returns a single registration
func (h *RegistrationHandler) GetRegistration(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	reg, err := h.admissionService.GetRegistration(id)
	if err != nil {
		respondAdmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRegistrationDTO(*reg))
}

// UpdateRegistrationStatus transitions a registration's status
func (h *RegistrationHandler) UpdateRegistrationStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status models.RegistrationStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	reg, err := h.admissionService.UpdateStatus(id, req.Status)
	if err != nil {
		respondAdmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRegistrationDTO(*reg))
}

// DeleteRegistration deletes a registration
func (h *RegistrationHandler) DeleteRegistration(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.admissionService.DeleteRegistration(id); err != nil {
		respondAdmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Registration deleted successfully",
	})
}

func respondAdmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGatheringNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrRegistrationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyRegistered):
		apierrors.Conflict(c, apierrors.ErrCodeAlreadyRegistered, err.Error())
	case errors.Is(err, services.ErrCapacityExceeded):
		apierrors.Conflict(c, apierrors.ErrCodeCapacityExceeded, err.Error())
	case errors.Is(err, services.ErrGatheringInactive):
		apierrors.RespondWithError(c, http.StatusForbidden,
			apierrors.NewAPIError(apierrors.ErrCodeGatheringInactive, err.Error()))
	case errors.Is(err, services.ErrInvalidRegistrationStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
