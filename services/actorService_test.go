package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
)

type fakePractitionerLookup struct{ byUser map[int64]*models.Practitioner }

func (f *fakePractitionerLookup) GetByUserID(ctx context.Context, userID int64) (*models.Practitioner, error) {
	return f.byUser[userID], nil
}

type fakePatientLookup struct{ byUser map[int64]*models.Patient }

func (f *fakePatientLookup) GetByUserID(ctx context.Context, userID int64) (*models.Patient, error) {
	return f.byUser[userID], nil
}

func TestActorResolve(t *testing.T) {
	svc := NewActorService(
		&fakePractitionerLookup{byUser: map[int64]*models.Practitioner{20: {ID: 7, UserID: 20}}},
		&fakePatientLookup{byUser: map[int64]*models.Patient{10: {ID: 3, UserID: 10}}},
	)

	practitioner, err := svc.Resolve(context.Background(), 20, models.RolePractitioner)
	if err != nil {
		t.Fatalf("Resolve(practitioner) error = %v", err)
	}
	if practitioner.PractitionerID != 7 || practitioner.PatientID != 0 {
		t.Errorf("practitioner actor = %+v, want PractitionerID 7", practitioner)
	}

	patient, err := svc.Resolve(context.Background(), 10, models.RolePatient)
	if err != nil {
		t.Fatalf("Resolve(patient) error = %v", err)
	}
	if patient.PatientID != 3 || patient.PractitionerID != 0 {
		t.Errorf("patient actor = %+v, want PatientID 3", patient)
	}

	admin, err := svc.Resolve(context.Background(), 1, models.RoleAdmin)
	if err != nil {
		t.Fatalf("Resolve(admin) error = %v", err)
	}
	if !admin.IsAdmin() {
		t.Error("admin actor does not report IsAdmin")
	}
}

func TestActorResolveMissingProfile(t *testing.T) {
	svc := NewActorService(
		&fakePractitionerLookup{byUser: map[int64]*models.Practitioner{}},
		&fakePatientLookup{byUser: map[int64]*models.Patient{}},
	)

	tests := []struct {
		name string
		role string
	}{
		{"practitioner without record", models.RolePractitioner},
		{"patient without record", models.RolePatient},
		{"unknown role", "Janitor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Resolve(context.Background(), 5, tt.role); !errors.Is(err, models.ErrForbidden) {
				t.Errorf("Resolve() error = %v, want ErrForbidden", err)
			}
		})
	}
}
