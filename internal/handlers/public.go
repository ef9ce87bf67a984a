package handlers

import (
	"net/http"

	"github.com/fsauth/gathering-api/internal/dto"
	apierrors "github.com/fsauth/gathering-api/internal/errors"
	"github.com/fsauth/gathering-api/internal/services"
	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated registration flow: browsing
// active gatherings, groups and members, and self-registering.
type PublicHandler struct {
	gatheringService *services.GatheringService
	groupService     *services.GroupService
	memberService    *services.MemberService
	admissionService *services.AdmissionService
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(
	gatheringService *services.GatheringService,
	groupService *services.GroupService,
	memberService *services.MemberService,
	admissionService *services.AdmissionService,
) *PublicHandler {
	return &PublicHandler{
		gatheringService: gatheringService,
		groupService:     groupService,
		memberService:    memberService,
		admissionService: admissionService,
	}
}

// ListActiveGatherings returns gatherings open for registration
func (h *PublicHandler) ListActiveGatherings(c *gin.Context) {
	gatherings, err := h.gatheringService.ListActiveGatherings()
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

// GetGatheringAvailability reports remaining capacity for a gathering
func (h *PublicHandler) GetGatheringAvailability(c *gin.Context) {
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

// ListGroups returns all groups for the registration form
func (h *PublicHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.ListGroups()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch groups")
		return
	}

	groupDTOs := make([]dto.GroupDTO, len(groups))
	for i, g := range groups {
		groupDTOs[i] = dto.ToGroupDTO(g.Group, g.MemberCount)
	}

	c.JSON(http.StatusOK, gin.H{
		"groups": groupDTOs,
	})
}

// ListGroupMembers returns the members of a group so a visitor can pick
// themselves from the roster.
func (h *PublicHandler) ListGroupMembers(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	members, err := h.memberService.ListMembers(&id)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch members")
		return
	}

	memberDTOs := make([]dto.MemberDTO, len(members))
	for i, m := range members {
		memberDTOs[i] = dto.ToMemberDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"members": memberDTOs,
	})
}

// CreateRegistration handles public self-registration. The gathering
// must be active and the resulting registration is always confirmed.
func (h *PublicHandler) CreateRegistration(c *gin.Context) {
	type PublicRegistrationRequest struct {
		GatheringID uint64 `json:"gathering_id" binding:"required"`
		MemberID    uint64 `json:"member_id" binding:"required"`
	}

	var req PublicRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	reg, err := h.admissionService.RequestAdmission(services.AdmissionInput{
		GatheringID: req.GatheringID,
		MemberID:    req.MemberID,
		PublicFlow:  true,
	})
	if err != nil {
		respondAdmissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"registration":      dto.ToRegistrationDTO(*reg),
		"confirmation_code": reg.ConfirmationCode,
	})
}
