package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
)

// fakeTimeBlockStore mirrors the repository's conflict rule: a block is
// refused when it overlaps a live appointment.
type fakeTimeBlockStore struct {
	liveAppointments []models.Appointment
	blocks           []models.TimeBlock
	deleted          []uint
}

func (f *fakeTimeBlockStore) Create(ctx context.Context, block *models.TimeBlock) error {
	for _, a := range f.liveAppointments {
		if a.Status != models.AppointmentPending && a.Status != models.AppointmentConfirmed {
			continue
		}
		if models.Overlaps(block.StartTime, block.EndTime, a.StartTime, a.EndTime()) {
			return fmt.Errorf("block overlaps appointment: %w", models.ErrConflict)
		}
	}
	block.ID = uint(len(f.blocks) + 1)
	f.blocks = append(f.blocks, *block)
	return nil
}

func (f *fakeTimeBlockStore) UpcomingForPractitioner(ctx context.Context, practitionerID uint, from time.Time) ([]models.TimeBlock, error) {
	return f.blocks, nil
}

func (f *fakeTimeBlockStore) DeleteOwned(ctx context.Context, id, practitionerID uint) error {
	for _, b := range f.blocks {
		if b.ID == id && b.PractitionerID == practitionerID {
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return fmt.Errorf("time block %d: %w", id, models.ErrNotFound)
}

func blockRequest(start, end time.Time) BlockRequest {
	return BlockRequest{
		StartTime: start.Format(time.RFC3339),
		EndTime:   end.Format(time.RFC3339),
		Reason:    "vacation",
	}
}

func TestTimeBlockCreate(t *testing.T) {
	store := &fakeTimeBlockStore{}
	svc := NewTimeBlockService(store)

	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	block, err := svc.Create(context.Background(), practitionerActor, blockRequest(start, start.Add(2*time.Hour)))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if block.PractitionerID != practitionerActor.PractitionerID {
		t.Errorf("practitioner ID = %d, want %d", block.PractitionerID, practitionerActor.PractitionerID)
	}
}

func TestTimeBlockCreateOnlyPractitioners(t *testing.T) {
	svc := NewTimeBlockService(&fakeTimeBlockStore{})

	start := time.Now().Add(time.Hour)
	for _, actor := range []Actor{patientActor, adminActor} {
		_, err := svc.Create(context.Background(), actor, blockRequest(start, start.Add(time.Hour)))
		if !errors.Is(err, models.ErrForbidden) {
			t.Errorf("Create() as %s error = %v, want ErrForbidden", actor.Role, err)
		}
	}
}

func TestTimeBlockCreateInvertedRange(t *testing.T) {
	svc := NewTimeBlockService(&fakeTimeBlockStore{})

	start := time.Now().Add(time.Hour).Truncate(time.Hour)
	tests := []struct {
		name string
		end  time.Time
	}{
		{"end before start", start.Add(-time.Hour)},
		{"empty range", start},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), practitionerActor, blockRequest(start, tt.end))
			if !errors.Is(err, models.ErrConflict) {
				t.Errorf("Create() error = %v, want ErrConflict", err)
			}
		})
	}
}

func TestTimeBlockCreateOverlapsLiveAppointment(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	store := &fakeTimeBlockStore{
		liveAppointments: []models.Appointment{
			{StartTime: start.Add(30 * time.Minute), DurationMinutes: 60, Status: models.AppointmentConfirmed},
		},
	}
	svc := NewTimeBlockService(store)

	_, err := svc.Create(context.Background(), practitionerActor, blockRequest(start, start.Add(time.Hour)))
	if !errors.Is(err, models.ErrConflict) {
		t.Errorf("Create() over a confirmed appointment error = %v, want ErrConflict", err)
	}
}

func TestTimeBlockCreateIgnoresTerminalAppointments(t *testing.T) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	store := &fakeTimeBlockStore{
		liveAppointments: []models.Appointment{
			{StartTime: start, DurationMinutes: 60, Status: models.AppointmentCancelled},
			{StartTime: start.Add(time.Hour), DurationMinutes: 60, Status: models.AppointmentFinalized},
		},
	}
	svc := NewTimeBlockService(store)

	if _, err := svc.Create(context.Background(), practitionerActor, blockRequest(start, start.Add(2*time.Hour))); err != nil {
		t.Errorf("Create() over terminal appointments error = %v, want success", err)
	}
}

func TestTimeBlockCreateValidation(t *testing.T) {
	svc := NewTimeBlockService(&fakeTimeBlockStore{})

	_, err := svc.Create(context.Background(), practitionerActor, BlockRequest{StartTime: "noonish", EndTime: "later"})
	if !errors.Is(err, models.ErrBadRequest) {
		t.Errorf("Create() with malformed times error = %v, want ErrBadRequest", err)
	}
}

func TestTimeBlockDeleteOwned(t *testing.T) {
	store := &fakeTimeBlockStore{
		blocks: []models.TimeBlock{{ID: 1, PractitionerID: practitionerActor.PractitionerID}},
	}
	svc := NewTimeBlockService(store)

	if err := svc.Delete(context.Background(), practitionerActor, 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(store.deleted) != 1 {
		t.Error("block was not deleted")
	}

	// Another practitioner's block looks like a missing one.
	other := Actor{UserID: 21, Role: models.RolePractitioner, PractitionerID: 8}
	store.blocks = []models.TimeBlock{{ID: 2, PractitionerID: practitionerActor.PractitionerID}}
	if err := svc.Delete(context.Background(), other, 2); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Delete() of foreign block error = %v, want ErrNotFound", err)
	}
}
