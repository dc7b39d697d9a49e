package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/services"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c.Request.Context(), &patient); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(201, patient)
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	id, ok := parseUintParam(c, "patient_id")
	if !ok {
		return
	}
	patient, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if patient == nil {
		c.JSON(404, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(200, patient)
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	patients, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, patients)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, ok := parseUintParam(c, "patient_id")
	if !ok {
		return
	}
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	patient.ID = id
	if err := h.service.Update(c.Request.Context(), &patient); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, patient)
}

// DeletePatient refuses with a conflict while appointments still reference the
// patient.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, ok := parseUintParam(c, "patient_id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Patient deleted successfully"})
}
