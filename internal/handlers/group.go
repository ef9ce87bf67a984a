package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fsauth/gathering-api/internal/dto"
	apierrors "github.com/fsauth/gathering-api/internal/errors"
	"github.com/fsauth/gathering-api/internal/services"
	"github.com/gin-gonic/gin"
)

// GroupHandler coordinates group HTTP handlers.
type GroupHandler struct {
	groupService *services.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

type groupRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

// CreateGroup creates a new group
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.groupService.CreateGroup(services.GroupInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGroupDTO(*group, 0))
}

// ListGroups returns all groups with member counts
func (h *GroupHandler) ListGroups(c *gin.Context) {
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

// GetGroup returns a single group
func (h *GroupHandler) GetGroup(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	group, err := h.groupService.GetGroup(id)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// UpdateGroup updates a group's name and description
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.groupService.UpdateGroup(id, services.GroupInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// DeleteGroup deletes a group, detaching its members
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.groupService.DeleteGroup(id); err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Group deleted successfully",
	})
}

func respondGroupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGroupNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidGroupName):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

// parseIDParam parses the :id path parameter, responding with 400 on failure.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}
