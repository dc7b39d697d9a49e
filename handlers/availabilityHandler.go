package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/services"
)

type AvailabilityHandler struct {
	service *services.AvailabilityService
}

func NewAvailabilityHandler(service *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// GetAvailableSlots returns the free slots of a practitioner's working day.
// Response shape: {"horarios": [{"hora": "09:00", "valor": "..."}, ...]}
func (h *AvailabilityHandler) GetAvailableSlots(c *gin.Context) {
	practitionerIDStr := c.Query("practitioner_id")
	practitionerID, err := strconv.ParseUint(practitionerIDStr, 10, 32)
	if err != nil || practitionerID == 0 {
		c.JSON(400, gin.H{"error": "Invalid practitioner_id"})
		return
	}

	slots, err := h.service.ComputeFreeSlots(c.Request.Context(), uint(practitionerID), c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"horarios": slots})
}
