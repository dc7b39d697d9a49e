package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/utils"
)

// Transition actions accepted by the appointment state machine.
const (
	ActionConfirm  = "confirm"
	ActionCancel   = "cancel"
	ActionFinalize = "finalize"
)

// AppointmentStore is the persistence surface the lifecycle logic needs.
type AppointmentStore interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	UpcomingForPatient(ctx context.Context, patientID uint, from time.Time) ([]models.Appointment, error)
	UpcomingForPractitioner(ctx context.Context, practitionerID uint, from time.Time) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// AppointmentService owns the appointment lifecycle: booking in PENDING
// state, the confirm/cancel transitions, and the agenda queries. Finalization
// is not reachable from here, it only happens through saving a clinical note.
type AppointmentService struct {
	store AppointmentStore
}

func NewAppointmentService(store AppointmentStore) *AppointmentService {
	return &AppointmentService{store: store}
}

// BookingRequest is a patient's booking submission.
type BookingRequest struct {
	PractitionerID  uint   `json:"practitioner_id"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Reason          string `json:"reason"`
}

// Create books an appointment for the requesting patient. The record always
// starts PENDING. A slot already taken surfaces models.ErrConflict from the
// store's unique constraint.
func (s *AppointmentService) Create(ctx context.Context, actor Actor, req BookingRequest) (*models.Appointment, error) {
	if actor.Role != models.RolePatient || actor.PatientID == 0 {
		return nil, fmt.Errorf("only patients book appointments: %w", models.ErrForbidden)
	}
	if err := utils.ValidateBookingRequest(req.PractitionerID, req.StartTime); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrBadRequest)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", req.StartTime, models.ErrBadRequest)
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = 60
	}

	appointment := &models.Appointment{
		PractitionerID:  req.PractitionerID,
		PatientID:       actor.PatientID,
		StartTime:       startTime,
		DurationMinutes: duration,
		Reason:          req.Reason,
		Status:          models.AppointmentPending,
	}
	if err := s.store.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Get loads an appointment, enforcing that the actor is its patient, its
// practitioner, or an admin.
func (s *AppointmentService) Get(ctx context.Context, actor Actor, id uint) (*models.Appointment, error) {
	appointment, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment %d: %w", id, models.ErrNotFound)
	}
	if err := s.authorize(actor, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Agenda returns the actor's upcoming appointments: the patient's own
// bookings, or the practitioner's schedule with finalized entries filtered
// out (cancelled ones stay visible).
func (s *AppointmentService) Agenda(ctx context.Context, actor Actor) ([]models.Appointment, error) {
	now := time.Now()
	switch {
	case actor.PatientID != 0:
		return s.store.UpcomingForPatient(ctx, actor.PatientID, now)
	case actor.PractitionerID != 0:
		return s.store.UpcomingForPractitioner(ctx, actor.PractitionerID, now)
	default:
		return nil, fmt.Errorf("actor has no agenda: %w", models.ErrForbidden)
	}
}

// Transition applies a lifecycle action to an appointment on behalf of the
// actor. Terminal appointments (CANCELLED, FINALIZED) reject every action.
// Finalize is rejected here with models.ErrNoteRequired: the only way to
// finalize is saving the clinical note, which performs both writes atomically.
func (s *AppointmentService) Transition(ctx context.Context, actor Actor, id uint, action string) (*models.Appointment, error) {
	appointment, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment %d: %w", id, models.ErrNotFound)
	}

	var next string
	switch action {
	case ActionConfirm:
		if !s.ownsAsPractitioner(actor, appointment) {
			return nil, fmt.Errorf("only the appointment's practitioner confirms it: %w", models.ErrForbidden)
		}
		next = models.AppointmentConfirmed
	case ActionCancel:
		if !s.ownsAsPractitioner(actor, appointment) && !s.ownsAsPatient(actor, appointment) && !actor.IsAdmin() {
			return nil, fmt.Errorf("cannot cancel another person's appointment: %w", models.ErrForbidden)
		}
		next = models.AppointmentCancelled
	case ActionFinalize:
		if !s.ownsAsPractitioner(actor, appointment) {
			return nil, fmt.Errorf("only the appointment's practitioner finalizes it: %w", models.ErrForbidden)
		}
		if appointment.IsTerminal() {
			return nil, fmt.Errorf("appointment %d: %w", id, models.ErrTerminalState)
		}
		return nil, models.ErrNoteRequired
	default:
		return nil, fmt.Errorf("unknown action %q: %w", action, models.ErrBadRequest)
	}

	if appointment.IsTerminal() {
		return nil, fmt.Errorf("appointment %d: %w", id, models.ErrTerminalState)
	}

	if err := s.store.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	appointment.Status = next
	return appointment, nil
}

func (s *AppointmentService) authorize(actor Actor, appointment *models.Appointment) error {
	if actor.IsAdmin() || s.ownsAsPractitioner(actor, appointment) || s.ownsAsPatient(actor, appointment) {
		return nil
	}
	return fmt.Errorf("appointment belongs to someone else: %w", models.ErrForbidden)
}

func (s *AppointmentService) ownsAsPractitioner(actor Actor, appointment *models.Appointment) bool {
	return actor.PractitionerID != 0 && actor.PractitionerID == appointment.PractitionerID
}

func (s *AppointmentService) ownsAsPatient(actor Actor, appointment *models.Appointment) bool {
	return actor.PatientID != 0 && actor.PatientID == appointment.PatientID
}
