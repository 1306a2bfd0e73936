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

// MeetingHandler handles meeting HTTP requests.
type MeetingHandler struct {
	meetingService service.MeetingService
	authMiddleware *middleware.AuthMiddleware
}

// NewMeetingHandler creates a new meeting handler.
func NewMeetingHandler(meetingService service.MeetingService, authMiddleware *middleware.AuthMiddleware) *MeetingHandler {
	return &MeetingHandler{
		meetingService: meetingService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers meeting routes.
func (h *MeetingHandler) RegisterRoutes(api *gin.RouterGroup) {
	groups := api.Group("/groups", h.authMiddleware.RequireAuth())
	{
		groups.POST("/:id/meetings", h.CreateMeeting)
		groups.GET("/:id/meetings", h.ListMeetings)
	}

	meetings := api.Group("/meetings", h.authMiddleware.RequireAuth())
	{
		meetings.GET("", h.ListMine)
		meetings.POST("/:id/rsvp", h.RSVP)
	}
}

// CreateMeeting schedules a meeting for a group.
func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req domain.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind create meeting request")
		response.BadRequest(c, err.Error())
		return
	}

	meeting, err := h.meetingService.Create(ctx, userID, groupID, &req)
	if err != nil {
		if writeGateError(c, err) {
			return
		}
		l.Error().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to create meeting")
		response.InternalError(c, "failed to create meeting")
		return
	}

	response.Created(c, meeting)
}

// ListMeetings lists a group's meetings.
func (h *MeetingHandler) ListMeetings(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	meetings, err := h.meetingService.ListByGroup(ctx, userID, groupID)
	if err != nil {
		if writeGateError(c, err) {
			return
		}
		l.Error().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to list meetings")
		response.InternalError(c, "failed to list meetings")
		return
	}

	response.Success(c, meetings)
}

// ListMine lists the meetings across all of the caller's groups.
func (h *MeetingHandler) ListMine(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)

	meetings, err := h.meetingService.ListMine(ctx, userID)
	if err != nil {
		l.Error().Err(err).Int64(log.FieldUserID, userID).Msg("failed to list meetings")
		response.InternalError(c, "failed to list meetings")
		return
	}

	response.Success(c, meetings)
}

// RSVP records the caller's attendance answer for a meeting.
func (h *MeetingHandler) RSVP(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	meetingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req domain.RSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rsvp, err := h.meetingService.RSVP(ctx, userID, meetingID, *req.Attending)
	if err != nil {
		if errors.Is(err, service.ErrMeetingNotFound) {
			response.NotFound(c, "meeting not found")
			return
		}
		if writeGateError(c, err) {
			return
		}
		l.Error().Err(err).Int64(log.FieldMeetingID, meetingID).Msg("failed to record rsvp")
		response.InternalError(c, "failed to record rsvp")
		return
	}

	response.Success(c, rsvp)
}
