package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/middlewares"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/services"
)

// writeError maps domain errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrBadRequest):
		c.JSON(400, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(403, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(404, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrTerminalState),
		errors.Is(err, models.ErrNoteRequired):
		c.JSON(409, gin.H{"error": err.Error()})
	default:
		middlewares.HttpError(c, err.Error(), 500, err)
	}
}

// resolveActor maps the authenticated user in the request context onto the
// clinic role record acting in this request. Writes the error response itself
// and reports success through the bool.
func resolveActor(c *gin.Context, actors *services.ActorService) (services.Actor, bool) {
	userIDStr, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "User ID not found in context"})
		return services.Actor{}, false
	}
	role, err := middlewares.ExtractUserRoleFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "User role not found in context"})
		return services.Actor{}, false
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid user ID in token"})
		return services.Actor{}, false
	}

	actor, err := actors.Resolve(c.Request.Context(), userID, role)
	if err != nil {
		writeError(c, err)
		return services.Actor{}, false
	}
	return actor, true
}

// parseUintParam parses a numeric path parameter.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(value), true
}
