package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ykwizera/studysync/internal/service"
	"github.com/ykwizera/studysync/pkg/response"
)

// pathID parses an int64 path parameter, replying 400 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// writeGateError maps the recurring membership-gate failures to HTTP
// responses. It reports whether the error was handled.
func writeGateError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, "group not found")
	case errors.Is(err, service.ErrNotMember):
		response.Forbidden(c, "not a member of this group")
	default:
		return false
	}
	return true
}
