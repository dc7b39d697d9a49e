package services

import (
	"context"
	"fmt"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
)

// Actor is the authenticated identity performing an operation, resolved once
// per request. Operations check its role and record ownership against this
// value instead of re-deriving the role from scattered lookups.
type Actor struct {
	UserID int64
	Role   string

	// PractitionerID is set when Role is Practitioner, PatientID when Role is
	// Patient. At most one of the two is nonzero.
	PractitionerID uint
	PatientID      uint
}

// IsAdmin reports whether the actor has unrestricted access.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// PractitionerLookup maps users to practitioner records.
type PractitionerLookup interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Practitioner, error)
}

// PatientLookup maps users to patient records.
type PatientLookup interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Patient, error)
}

// ActorService turns an authenticated user (ID + role from the token) into an
// Actor carrying its domain record. Each identity maps to at most one
// practitioner or one patient.
type ActorService struct {
	practitioners PractitionerLookup
	patients      PatientLookup
}

func NewActorService(practitioners PractitionerLookup, patients PatientLookup) *ActorService {
	return &ActorService{practitioners: practitioners, patients: patients}
}

// Resolve builds the Actor for a user. A Practitioner or Patient role without
// a matching domain record is a misconfigured account and reports
// models.ErrForbidden.
func (s *ActorService) Resolve(ctx context.Context, userID int64, role string) (Actor, error) {
	actor := Actor{UserID: userID, Role: role}

	switch role {
	case models.RoleAdmin:
		return actor, nil
	case models.RolePractitioner:
		practitioner, err := s.practitioners.GetByUserID(ctx, userID)
		if err != nil {
			return Actor{}, fmt.Errorf("failed to resolve practitioner profile: %w", err)
		}
		if practitioner == nil {
			return Actor{}, fmt.Errorf("user has no practitioner profile: %w", models.ErrForbidden)
		}
		actor.PractitionerID = practitioner.ID
		return actor, nil
	case models.RolePatient:
		patient, err := s.patients.GetByUserID(ctx, userID)
		if err != nil {
			return Actor{}, fmt.Errorf("failed to resolve patient profile: %w", err)
		}
		if patient == nil {
			return Actor{}, fmt.Errorf("user has no patient profile: %w", models.ErrForbidden)
		}
		actor.PatientID = patient.ID
		return actor, nil
	default:
		return Actor{}, fmt.Errorf("unknown role %q: %w", role, models.ErrForbidden)
	}
}
