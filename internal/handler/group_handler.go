package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/internal/service"
	"github.com/ykwizera/studysync/pkg/log"
	"github.com/ykwizera/studysync/pkg/middleware"
	"github.com/ykwizera/studysync/pkg/response"
)

// GroupHandler handles group HTTP requests.
type GroupHandler struct {
	groupService   service.GroupService
	authMiddleware *middleware.AuthMiddleware
}

// NewGroupHandler creates a new group handler.
func NewGroupHandler(groupService service.GroupService, authMiddleware *middleware.AuthMiddleware) *GroupHandler {
	return &GroupHandler{
		groupService:   groupService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers group routes.
func (h *GroupHandler) RegisterRoutes(api *gin.RouterGroup) {
	groups := api.Group("/groups", h.authMiddleware.RequireAuth())
	{
		groups.POST("", h.CreateGroup)
		groups.GET("", h.ListMyGroups)
		groups.POST("/join", h.JoinGroup)
		groups.GET("/:id", h.GetGroup)
		groups.GET("/:id/members", h.ListMembers)
	}
}

// CreateGroup creates a new group.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)

	var req domain.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind create group request")
		response.BadRequest(c, err.Error())
		return
	}

	group, err := h.groupService.Create(ctx, userID, &req)
	if err != nil {
		l.Error().Err(err).Msg("failed to create group")
		response.InternalError(c, "failed to create group")
		return
	}

	response.Created(c, group)
}

// ListMyGroups lists the caller's groups.
func (h *GroupHandler) ListMyGroups(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)

	groups, err := h.groupService.ListMine(ctx, userID)
	if err != nil {
		l.Error().Err(err).Msg("failed to list groups")
		response.InternalError(c, "failed to list groups")
		return
	}

	response.Success(c, groups)
}

// JoinGroup joins a group by invite code.
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)

	var req domain.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	group, err := h.groupService.Join(ctx, userID, req.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			response.NotFound(c, "invite code not found")
		case errors.Is(err, service.ErrAlreadyMember):
			response.AlreadyMember(c, "already a member of this group")
		default:
			l.Error().Err(err).Msg("failed to join group")
			response.InternalError(c, "failed to join group")
		}
		return
	}

	response.Success(c, group)
}

// GetGroup retrieves a group.
func (h *GroupHandler) GetGroup(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	group, err := h.groupService.Get(ctx, userID, groupID)
	if err != nil {
		if writeGateError(c, err) {
			return
		}
		l.Error().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to get group")
		response.InternalError(c, "failed to get group")
		return
	}

	response.Success(c, group)
}

// ListMembers lists a group's members.
func (h *GroupHandler) ListMembers(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	members, err := h.groupService.Members(ctx, userID, groupID)
	if err != nil {
		if writeGateError(c, err) {
			return
		}
		l.Error().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to list group members")
		response.InternalError(c, "failed to list group members")
		return
	}

	response.Success(c, members)
}
