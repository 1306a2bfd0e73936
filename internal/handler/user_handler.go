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

// UserHandler handles auth and user HTTP requests.
type UserHandler struct {
	userService    service.UserService
	authMiddleware *middleware.AuthMiddleware
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, authMiddleware *middleware.AuthMiddleware) *UserHandler {
	return &UserHandler{
		userService:    userService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers auth and user routes.
func (h *UserHandler) RegisterRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
	}

	users := api.Group("/users", h.authMiddleware.RequireAuth())
	{
		users.GET("/me", h.Me)
		users.GET("", h.ListUsers)
	}
}

// Register registers a new user.
func (h *UserHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind register request")
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.Register(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Conflict(c, "email already registered")
			return
		}
		l.Error().Err(err).Msg("failed to register user")
		response.InternalError(c, "failed to register user")
		return
	}

	response.Created(c, resp)
}

// Login authenticates a user.
func (h *UserHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.Login(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid email or password")
			return
		}
		l.Error().Err(err).Msg("failed to log in user")
		response.InternalError(c, "failed to log in")
		return
	}

	response.Success(c, resp)
}

// Refresh exchanges a refresh token for a new token pair.
func (h *UserHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.Refresh(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid refresh token")
			return
		}
		l.Error().Err(err).Msg("failed to refresh token")
		response.InternalError(c, "failed to refresh token")
		return
	}

	response.Success(c, resp)
}

// Me retrieves the current user.
func (h *UserHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)

	user, err := h.userService.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		l.Error().Err(err).Int64(log.FieldUserID, userID).Msg("failed to get current user")
		response.InternalError(c, "failed to get user")
		return
	}

	response.Success(c, user)
}

// ListUsers lists all users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	users, err := h.userService.ListUsers(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to list users")
		response.InternalError(c, "failed to list users")
		return
	}

	response.Success(c, users)
}
