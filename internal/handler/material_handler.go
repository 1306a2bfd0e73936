package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/internal/service"
	"github.com/ykwizera/studysync/pkg/log"
	"github.com/ykwizera/studysync/pkg/middleware"
	"github.com/ykwizera/studysync/pkg/response"
)

// MaterialHandler handles study material HTTP requests.
type MaterialHandler struct {
	materialService service.MaterialService
	authMiddleware  *middleware.AuthMiddleware
}

// NewMaterialHandler creates a new material handler.
func NewMaterialHandler(materialService service.MaterialService, authMiddleware *middleware.AuthMiddleware) *MaterialHandler {
	return &MaterialHandler{
		materialService: materialService,
		authMiddleware:  authMiddleware,
	}
}

// RegisterRoutes registers material routes.
func (h *MaterialHandler) RegisterRoutes(api *gin.RouterGroup) {
	groups := api.Group("/groups", h.authMiddleware.RequireAuth())
	{
		groups.POST("/:id/files", h.Upload)
		groups.GET("/:id/files", h.ListFiles)
		groups.GET("/:id/files/:fileID/download", h.Download)
		groups.DELETE("/:id/files/:fileID", h.Delete)
	}
}

// Upload stores a multipart file and its metadata.
func (h *MaterialHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		l.Error().Err(err).Msg("failed to open uploaded file")
		response.InternalError(c, "failed to read uploaded file")
		return
	}
	defer file.Close()

	material, err := h.materialService.Upload(
		ctx, userID, groupID,
		&domain.UploadMaterialInput{
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Description: c.PostForm("description"),
			Category:    c.PostForm("category"),
		},
		file,
	)
	if err != nil {
		if writeGateError(c, err) {
			return
		}
		l.Error().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to upload material")
		response.InternalError(c, "failed to upload file")
		return
	}

	response.Created(c, material)
}

// ListFiles lists a group's study materials.
func (h *MaterialHandler) ListFiles(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	materials, err := h.materialService.ListByGroup(ctx, userID, groupID)
	if err != nil {
		if writeGateError(c, err) {
			return
		}
		l.Error().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to list materials")
		response.InternalError(c, "failed to list files")
		return
	}

	response.Success(c, materials)
}

// Download streams a material's content.
func (h *MaterialHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}
	materialID, ok := pathID(c, "fileID")
	if !ok {
		return
	}

	material, content, err := h.materialService.Download(ctx, userID, groupID, materialID)
	if err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			response.NotFound(c, "file not found")
			return
		}
		if writeGateError(c, err) {
			return
		}
		l.Error().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to download material")
		response.InternalError(c, "failed to download file")
		return
	}
	defer content.Close()

	c.Header("Content-Disposition", `attachment; filename="`+material.FileName+`"`)
	contentType := material.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, material.Size, contentType, content, nil)
}

// Delete removes a study material.
func (h *MaterialHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}
	materialID, ok := pathID(c, "fileID")
	if !ok {
		return
	}

	if err := h.materialService.Delete(ctx, userID, groupID, materialID); err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			response.NotFound(c, "file not found")
			return
		}
		if writeGateError(c, err) {
			return
		}
		l.Error().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to delete material")
		response.InternalError(c, "failed to delete file")
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
