package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/services"
)

type PractitionerHandler struct {
	service *services.PractitionerService
}

func NewPractitionerHandler(service *services.PractitionerService) *PractitionerHandler {
	return &PractitionerHandler{service: service}
}

func (h *PractitionerHandler) CreatePractitioner(c *gin.Context) {
	var practitioner models.Practitioner
	if err := c.ShouldBindJSON(&practitioner); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c.Request.Context(), &practitioner); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(201, practitioner)
}

func (h *PractitionerHandler) GetPractitionerByID(c *gin.Context) {
	id, ok := parseUintParam(c, "practitioner_id")
	if !ok {
		return
	}
	practitioner, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if practitioner == nil {
		c.JSON(404, gin.H{"error": "Practitioner not found"})
		return
	}
	c.JSON(200, practitioner)
}

func (h *PractitionerHandler) GetAllPractitioners(c *gin.Context) {
	practitioners, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, practitioners)
}

func (h *PractitionerHandler) UpdatePractitioner(c *gin.Context) {
	id, ok := parseUintParam(c, "practitioner_id")
	if !ok {
		return
	}
	var practitioner models.Practitioner
	if err := c.ShouldBindJSON(&practitioner); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	practitioner.ID = id
	if err := h.service.Update(c.Request.Context(), &practitioner); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, practitioner)
}

// DeletePractitioner refuses with a conflict while appointments or time blocks
// still reference the practitioner.
func (h *PractitionerHandler) DeletePractitioner(c *gin.Context) {
	id, ok := parseUintParam(c, "practitioner_id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Practitioner deleted successfully"})
}
