package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/handlers"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/middlewares"
)

// ScheduleHandlers bundles the handlers wired into the scheduling routes.
type ScheduleHandlers struct {
	Availability *handlers.AvailabilityHandler
	Appointment  *handlers.AppointmentHandler
	TimeBlock    *handlers.TimeBlockHandler
	ClinicalNote *handlers.ClinicalNoteHandler
	Practitioner *handlers.PractitionerHandler
	Patient      *handlers.PatientHandler
}

// SetupScheduleRoutes registers the scheduling, clinical-note and profile routes.
func SetupScheduleRoutes(router *gin.Engine, h ScheduleHandlers) {
	authed := router.Group("/").Use(middlewares.TokenAuthMiddleware())
	{
		// Availability is readable by any authenticated user.
		authed.GET("/available_slots", h.Availability.GetAvailableSlots)

		authed.POST("/appointments", h.Appointment.CreateAppointment)
		authed.GET("/appointments", h.Appointment.GetAgenda)
		authed.GET("/appointments/:appointment_id", h.Appointment.GetAppointmentByID)
		authed.POST("/appointments/:appointment_id/transition", h.Appointment.TransitionAppointment)

		authed.GET("/appointments/:appointment_id/note", h.ClinicalNote.GetNote)
	}

	practitioner := router.Group("/").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware("Practitioner"),
	)
	{
		practitioner.POST("/time_blocks", h.TimeBlock.CreateTimeBlock)
		practitioner.GET("/time_blocks", h.TimeBlock.GetTimeBlocks)
		practitioner.DELETE("/time_blocks/:block_id", h.TimeBlock.DeleteTimeBlock)

		practitioner.PUT("/appointments/:appointment_id/note", h.ClinicalNote.SaveNote)
		practitioner.GET("/clinical_notes", h.ClinicalNote.GetOwnNotes)
	}

	staff := router.Group("/").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware("Practitioner", "Admin"),
	)
	{
		staff.GET("/patients/:patient_id/clinical_notes", h.ClinicalNote.GetPatientNotes)
	}

	admin := router.Group("/").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware("Admin"),
	)
	{
		admin.POST("/practitioners", h.Practitioner.CreatePractitioner)
		admin.GET("/practitioners", h.Practitioner.GetAllPractitioners)
		admin.GET("/practitioners/:practitioner_id", h.Practitioner.GetPractitionerByID)
		admin.PUT("/practitioners/:practitioner_id", h.Practitioner.UpdatePractitioner)
		admin.DELETE("/practitioners/:practitioner_id", h.Practitioner.DeletePractitioner)

		admin.POST("/patients", h.Patient.CreatePatient)
		admin.GET("/patients", h.Patient.GetAllPatients)
		admin.GET("/patients/:patient_id", h.Patient.GetPatientByID)
		admin.PUT("/patients/:patient_id", h.Patient.UpdatePatient)
		admin.DELETE("/patients/:patient_id", h.Patient.DeletePatient)
	}
}
