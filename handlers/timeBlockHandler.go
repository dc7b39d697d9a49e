package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/services"
)

type TimeBlockHandler struct {
	service *services.TimeBlockService
	actors  *services.ActorService
}

func NewTimeBlockHandler(service *services.TimeBlockService, actors *services.ActorService) *TimeBlockHandler {
	return &TimeBlockHandler{service: service, actors: actors}
}

// CreateTimeBlock reserves part of the practitioner's schedule. Rejected with
// a conflict when pending or confirmed appointments fall inside the range.
func (h *TimeBlockHandler) CreateTimeBlock(c *gin.Context) {
	actor, ok := resolveActor(c, h.actors)
	if !ok {
		return
	}

	var req services.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	block, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(201, block)
}

func (h *TimeBlockHandler) GetTimeBlocks(c *gin.Context) {
	actor, ok := resolveActor(c, h.actors)
	if !ok {
		return
	}

	blocks, err := h.service.Upcoming(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, blocks)
}

func (h *TimeBlockHandler) DeleteTimeBlock(c *gin.Context) {
	actor, ok := resolveActor(c, h.actors)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "block_id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Time block deleted successfully"})
}
