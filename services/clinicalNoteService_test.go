package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
)

// fakeClinicalNoteStore finalizes the appointment on save like the real
// repository does, so the lifecycle coupling is observable in tests.
type fakeClinicalNoteStore struct {
	appointments *fakeAppointmentStore
	notes        map[uint]*models.ClinicalNote
	saves        int
}

func newFakeClinicalNoteStore(appointments *fakeAppointmentStore) *fakeClinicalNoteStore {
	return &fakeClinicalNoteStore{appointments: appointments, notes: map[uint]*models.ClinicalNote{}}
}

func (f *fakeClinicalNoteStore) SaveWithFinalize(ctx context.Context, note *models.ClinicalNote) error {
	copied := *note
	f.notes[note.AppointmentID] = &copied
	f.saves++
	if a, ok := f.appointments.appointments[note.AppointmentID]; ok && a.Status != models.AppointmentFinalized {
		a.Status = models.AppointmentFinalized
	}
	return nil
}

func (f *fakeClinicalNoteStore) GetByAppointment(ctx context.Context, appointmentID uint) (*models.ClinicalNote, error) {
	note, ok := f.notes[appointmentID]
	if !ok {
		return nil, nil
	}
	copied := *note
	return &copied, nil
}

func (f *fakeClinicalNoteStore) ForPractitioner(ctx context.Context, practitionerID uint) ([]models.ClinicalNote, error) {
	var out []models.ClinicalNote
	for _, n := range f.notes {
		if n.PractitionerID == practitionerID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeClinicalNoteStore) ForPatient(ctx context.Context, patientID uint) ([]models.ClinicalNote, error) {
	var out []models.ClinicalNote
	for _, n := range f.notes {
		if n.PatientID == patientID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func noteRequest() NoteRequest {
	return NoteRequest{
		Subjective:   "reports less pain after last session",
		Objective:    "lumbar flexion improved to 60 degrees",
		AnalysisPlan: "continue strengthening program, review in two weeks",
	}
}

func noteFixture(status string) (*ClinicalNoteService, *fakeAppointmentStore, *fakeClinicalNoteStore, uint) {
	appointments := newFakeAppointmentStore()
	a := pendingAppointment()
	a.Status = status
	id := appointments.add(a)
	notes := newFakeClinicalNoteStore(appointments)
	return NewClinicalNoteService(notes, appointments), appointments, notes, id
}

func TestClinicalNoteSaveFinalizesAppointment(t *testing.T) {
	svc, appointments, _, id := noteFixture(models.AppointmentConfirmed)

	note, err := svc.Save(context.Background(), practitionerActor, id, noteRequest())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if note.PatientID != 3 || note.PractitionerID != 7 {
		t.Errorf("note ownership = practitioner %d / patient %d, want 7 / 3", note.PractitionerID, note.PatientID)
	}
	if got := appointments.appointments[id].Status; got != models.AppointmentFinalized {
		t.Errorf("appointment status after save = %s, want %s", got, models.AppointmentFinalized)
	}
}

func TestClinicalNoteEditKeepsFinalized(t *testing.T) {
	svc, appointments, notes, id := noteFixture(models.AppointmentConfirmed)

	if _, err := svc.Save(context.Background(), practitionerActor, id, noteRequest()); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}

	req := noteRequest()
	req.AnalysisPlan = "discharge, goals met"
	if _, err := svc.Save(context.Background(), practitionerActor, id, req); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	if notes.saves != 2 {
		t.Errorf("saves = %d, want 2 (upsert, not duplicate)", notes.saves)
	}
	if got := appointments.appointments[id].Status; got != models.AppointmentFinalized {
		t.Errorf("status after edit = %s, want still %s", got, models.AppointmentFinalized)
	}
	if got := notes.notes[id].AnalysisPlan; got != req.AnalysisPlan {
		t.Errorf("plan = %q, want updated text", got)
	}
}

func TestClinicalNoteSaveOnCancelled(t *testing.T) {
	svc, _, _, id := noteFixture(models.AppointmentCancelled)

	_, err := svc.Save(context.Background(), practitionerActor, id, noteRequest())
	if !errors.Is(err, models.ErrTerminalState) {
		t.Errorf("Save() on cancelled appointment error = %v, want ErrTerminalState", err)
	}
}

func TestClinicalNoteSaveAuthorization(t *testing.T) {
	svc, _, _, id := noteFixture(models.AppointmentConfirmed)

	otherPractitioner := Actor{UserID: 21, Role: models.RolePractitioner, PractitionerID: 8}
	for _, actor := range []Actor{patientActor, adminActor, otherPractitioner} {
		if _, err := svc.Save(context.Background(), actor, id, noteRequest()); !errors.Is(err, models.ErrForbidden) {
			t.Errorf("Save() as %v error = %v, want ErrForbidden", actor, err)
		}
	}
}

func TestClinicalNoteSaveValidation(t *testing.T) {
	svc, _, _, id := noteFixture(models.AppointmentConfirmed)

	_, err := svc.Save(context.Background(), practitionerActor, id, NoteRequest{Subjective: "only this"})
	if !errors.Is(err, models.ErrBadRequest) {
		t.Errorf("Save() with empty SOAP fields error = %v, want ErrBadRequest", err)
	}
}

func TestClinicalNoteSaveMissingAppointment(t *testing.T) {
	appointments := newFakeAppointmentStore()
	svc := NewClinicalNoteService(newFakeClinicalNoteStore(appointments), appointments)

	_, err := svc.Save(context.Background(), practitionerActor, 99, noteRequest())
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Save() on missing appointment error = %v, want ErrNotFound", err)
	}
}

func TestClinicalNoteGet(t *testing.T) {
	svc, _, _, id := noteFixture(models.AppointmentConfirmed)

	if _, err := svc.Get(context.Background(), patientActor, id); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Get() before any save error = %v, want ErrNotFound", err)
	}

	if _, err := svc.Save(context.Background(), practitionerActor, id, noteRequest()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	for _, actor := range []Actor{patientActor, practitionerActor, adminActor} {
		if _, err := svc.Get(context.Background(), actor, id); err != nil {
			t.Errorf("Get() as %s error = %v", actor.Role, err)
		}
	}
	if _, err := svc.Get(context.Background(), otherPatientActor, id); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("Get() as stranger error = %v, want ErrForbidden", err)
	}
}

func TestClinicalNoteListForPatient(t *testing.T) {
	svc, _, _, id := noteFixture(models.AppointmentConfirmed)
	if _, err := svc.Save(context.Background(), practitionerActor, id, noteRequest()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	notes, err := svc.ListForPatient(context.Background(), practitionerActor, 3)
	if err != nil {
		t.Fatalf("ListForPatient() error = %v", err)
	}
	if len(notes) != 1 {
		t.Errorf("got %d notes, want 1", len(notes))
	}

	if _, err := svc.ListForPatient(context.Background(), patientActor, 3); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("ListForPatient() as patient error = %v, want ErrForbidden", err)
	}
}
