package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/services"
)

type ClinicalNoteHandler struct {
	service *services.ClinicalNoteService
	actors  *services.ActorService
}

func NewClinicalNoteHandler(service *services.ClinicalNoteService, actors *services.ActorService) *ClinicalNoteHandler {
	return &ClinicalNoteHandler{service: service, actors: actors}
}

// SaveNote creates or updates the clinical note of an appointment. Saving a
// note finalizes the appointment in the same transaction.
func (h *ClinicalNoteHandler) SaveNote(c *gin.Context) {
	actor, ok := resolveActor(c, h.actors)
	if !ok {
		return
	}
	appointmentID, ok := parseUintParam(c, "appointment_id")
	if !ok {
		return
	}

	var req services.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	note, err := h.service.Save(c.Request.Context(), actor, appointmentID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, note)
}

func (h *ClinicalNoteHandler) GetNote(c *gin.Context) {
	actor, ok := resolveActor(c, h.actors)
	if !ok {
		return
	}
	appointmentID, ok := parseUintParam(c, "appointment_id")
	if !ok {
		return
	}

	note, err := h.service.Get(c.Request.Context(), actor, appointmentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, note)
}

// GetOwnNotes lists the notes written by the authenticated practitioner.
func (h *ClinicalNoteHandler) GetOwnNotes(c *gin.Context) {
	actor, ok := resolveActor(c, h.actors)
	if !ok {
		return
	}

	notes, err := h.service.ListOwn(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, notes)
}

// GetPatientNotes lists the clinical history of a patient.
func (h *ClinicalNoteHandler) GetPatientNotes(c *gin.Context) {
	actor, ok := resolveActor(c, h.actors)
	if !ok {
		return
	}
	patientID, ok := parseUintParam(c, "patient_id")
	if !ok {
		return
	}

	notes, err := h.service.ListForPatient(c.Request.Context(), actor, patientID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, notes)
}
