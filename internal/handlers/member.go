package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fsauth/gathering-api/internal/dto"
	apierrors "github.com/fsauth/gathering-api/internal/errors"
	"github.com/fsauth/gathering-api/internal/models"
	"github.com/fsauth/gathering-api/internal/services"
	"github.com/gin-gonic/gin"
)

// MemberHandler coordinates member HTTP handlers.
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

type memberRequest struct {
	Name    string            `json:"name" binding:"required,max=255"`
	Email   string            `json:"email" binding:"required,email"`
	Phone   string            `json:"phone"`
	GroupID *uint64           `json:"group_id"`
	Role    models.MemberRole `json:"role"`
}

// CreateMember creates a new member
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.memberService.CreateMember(services.MemberInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		GroupID: req.GroupID,
		Role:    req.Role,
	})
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMemberDTO(*member))
}

// ListMembers returns members, optionally filtered by group
func (h *MemberHandler) ListMembers(c *gin.Context) {
	var groupID *uint64
	if raw := c.Query("group_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid group_id")
			return
		}
		groupID = &id
	}

	members, err := h.memberService.ListMembers(groupID)
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

// GetMember returns a single member
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	member, err := h.memberService.GetMember(id)
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberDTO(*member))
}

// UpdateMember updates a member
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.memberService.UpdateMember(id, services.MemberInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		GroupID: req.GroupID,
		Role:    req.Role,
	})
	if err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberDTO(*member))
}

// DeleteMember deletes a member
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.memberService.DeleteMember(id); err != nil {
		respondMemberError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member deleted successfully",
	})
}

func respondMemberError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrGroupNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidMemberName),
		errors.Is(err, services.ErrInvalidMemberEmail),
		errors.Is(err, services.ErrInvalidMemberRole):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrMemberHasRegistrations):
		apierrors.Conflict(c, "", err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
