package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/services"
)

type AppointmentHandler struct {
	service *services.AppointmentService
	actors  *services.ActorService
}

func NewAppointmentHandler(service *services.AppointmentService, actors *services.ActorService) *AppointmentHandler {
	return &AppointmentHandler{service: service, actors: actors}
}

// CreateAppointment books a pending appointment for the authenticated patient.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	actor, ok := resolveActor(c, h.actors)
	if !ok {
		return
	}

	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	appointment, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(201, appointment)
}

// GetAgenda lists the actor's upcoming appointments. Patients see all of
// theirs; practitioners see pending, confirmed and cancelled ones.
func (h *AppointmentHandler) GetAgenda(c *gin.Context) {
	actor, ok := resolveActor(c, h.actors)
	if !ok {
		return
	}

	appointments, err := h.service.Agenda(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, appointments)
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	actor, ok := resolveActor(c, h.actors)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "appointment_id")
	if !ok {
		return
	}

	appointment, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, appointment)
}

type transitionRequest struct {
	Action string `json:"action"`
}

// TransitionAppointment applies a lifecycle action (confirm, cancel, finalize)
// to an appointment.
func (h *AppointmentHandler) TransitionAppointment(c *gin.Context) {
	actor, ok := resolveActor(c, h.actors)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "appointment_id")
	if !ok {
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	appointment, err := h.service.Transition(c.Request.Context(), actor, id, req.Action)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(200, appointment)
}
