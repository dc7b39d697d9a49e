package services

import (
	"context"
	"fmt"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/utils"
)

// ClinicalNoteStore persists SOAP notes. SaveWithFinalize must write the note
// and move the appointment to FINALIZED in one transaction.
type ClinicalNoteStore interface {
	SaveWithFinalize(ctx context.Context, note *models.ClinicalNote) error
	GetByAppointment(ctx context.Context, appointmentID uint) (*models.ClinicalNote, error)
	ForPractitioner(ctx context.Context, practitionerID uint) ([]models.ClinicalNote, error)
	ForPatient(ctx context.Context, patientID uint) ([]models.ClinicalNote, error)
}

// AppointmentReader is the slice of the appointment store the note flow needs.
type AppointmentReader interface {
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
}

// ClinicalNoteService handles session documentation. Saving a note is the
// only path that finalizes an appointment.
type ClinicalNoteService struct {
	notes        ClinicalNoteStore
	appointments AppointmentReader
}

func NewClinicalNoteService(notes ClinicalNoteStore, appointments AppointmentReader) *ClinicalNoteService {
	return &ClinicalNoteService{notes: notes, appointments: appointments}
}

// NoteRequest carries the SOAP fields of a clinical note.
type NoteRequest struct {
	Subjective   string `json:"subjective"`
	Objective    string `json:"objective"`
	AnalysisPlan string `json:"analysis_plan"`
}

// Save creates or updates the note of an appointment and finalizes the
// appointment if it was not finalized yet. Only the appointment's own
// practitioner may write it. A cancelled appointment cannot be documented.
// Editing the note of an already finalized appointment leaves the status
// untouched.
func (s *ClinicalNoteService) Save(ctx context.Context, actor Actor, appointmentID uint, req NoteRequest) (*models.ClinicalNote, error) {
	if actor.Role != models.RolePractitioner || actor.PractitionerID == 0 {
		return nil, fmt.Errorf("only practitioners write clinical notes: %w", models.ErrForbidden)
	}
	if err := utils.ValidateNoteRequest(req.Subjective, req.Objective, req.AnalysisPlan); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrBadRequest)
	}

	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment %d: %w", appointmentID, models.ErrNotFound)
	}
	if appointment.PractitionerID != actor.PractitionerID {
		return nil, fmt.Errorf("appointment belongs to another practitioner: %w", models.ErrForbidden)
	}
	if appointment.Status == models.AppointmentCancelled {
		return nil, fmt.Errorf("cancelled appointment cannot be documented: %w", models.ErrTerminalState)
	}

	note := &models.ClinicalNote{
		AppointmentID:  appointmentID,
		PractitionerID: appointment.PractitionerID,
		PatientID:      appointment.PatientID,
		Subjective:     req.Subjective,
		Objective:      req.Objective,
		AnalysisPlan:   req.AnalysisPlan,
	}
	if err := s.notes.SaveWithFinalize(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Get loads the note of an appointment for its practitioner, its patient, or
// an admin.
func (s *ClinicalNoteService) Get(ctx context.Context, actor Actor, appointmentID uint) (*models.ClinicalNote, error) {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment %d: %w", appointmentID, models.ErrNotFound)
	}

	isPractitioner := actor.PractitionerID != 0 && actor.PractitionerID == appointment.PractitionerID
	isPatient := actor.PatientID != 0 && actor.PatientID == appointment.PatientID
	if !actor.IsAdmin() && !isPractitioner && !isPatient {
		return nil, fmt.Errorf("clinical note belongs to someone else: %w", models.ErrForbidden)
	}

	note, err := s.notes.GetByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("no note for appointment %d: %w", appointmentID, models.ErrNotFound)
	}
	return note, nil
}

// ListOwn lists the notes authored by the acting practitioner.
func (s *ClinicalNoteService) ListOwn(ctx context.Context, actor Actor) ([]models.ClinicalNote, error) {
	if actor.PractitionerID == 0 {
		return nil, fmt.Errorf("only practitioners list their notes: %w", models.ErrForbidden)
	}
	return s.notes.ForPractitioner(ctx, actor.PractitionerID)
}

// ListForPatient lists a patient's notes for clinical review.
func (s *ClinicalNoteService) ListForPatient(ctx context.Context, actor Actor, patientID uint) ([]models.ClinicalNote, error) {
	if !actor.IsAdmin() && actor.Role != models.RolePractitioner {
		return nil, fmt.Errorf("patient history is restricted to clinical staff: %w", models.ErrForbidden)
	}
	return s.notes.ForPatient(ctx, patientID)
}
