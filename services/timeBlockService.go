package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/utils"
)

// TimeBlockStore is the persistence surface for practitioner unavailability.
// Create must refuse, atomically with the insert, blocks overlapping live
// (PENDING or CONFIRMED) appointments.
type TimeBlockStore interface {
	Create(ctx context.Context, block *models.TimeBlock) error
	UpcomingForPractitioner(ctx context.Context, practitionerID uint, from time.Time) ([]models.TimeBlock, error)
	DeleteOwned(ctx context.Context, id, practitionerID uint) error
}

// TimeBlockService manages practitioner-declared unavailability.
type TimeBlockService struct {
	store TimeBlockStore
}

func NewTimeBlockService(store TimeBlockStore) *TimeBlockService {
	return &TimeBlockService{store: store}
}

// BlockRequest is a practitioner's request to block off part of the agenda.
type BlockRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// Create blocks off [start, end) for the acting practitioner. An inverted or
// empty range is a conflict, as is any overlap with a PENDING or CONFIRMED
// appointment; overlap with cancelled or finalized appointments is fine.
func (s *TimeBlockService) Create(ctx context.Context, actor Actor, req BlockRequest) (*models.TimeBlock, error) {
	if actor.Role != models.RolePractitioner || actor.PractitionerID == 0 {
		return nil, fmt.Errorf("only practitioners block time: %w", models.ErrForbidden)
	}
	if err := utils.ValidateBlockRequest(req.StartTime, req.EndTime); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrBadRequest)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", req.StartTime, models.ErrBadRequest)
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q: %w", req.EndTime, models.ErrBadRequest)
	}

	if !startTime.Before(endTime) {
		return nil, fmt.Errorf("block end must be after its start: %w", models.ErrConflict)
	}

	block := &models.TimeBlock{
		PractitionerID: actor.PractitionerID,
		StartTime:      startTime,
		EndTime:        endTime,
		Reason:         req.Reason,
	}
	if err := s.store.Create(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

// Upcoming lists the acting practitioner's blocks from now on.
func (s *TimeBlockService) Upcoming(ctx context.Context, actor Actor) ([]models.TimeBlock, error) {
	if actor.PractitionerID == 0 {
		return nil, fmt.Errorf("only practitioners have time blocks: %w", models.ErrForbidden)
	}
	return s.store.UpcomingForPractitioner(ctx, actor.PractitionerID, time.Now())
}

// Delete removes one of the acting practitioner's blocks. Blocks are hard
// deleted, there is no cancelled state for them.
func (s *TimeBlockService) Delete(ctx context.Context, actor Actor, id uint) error {
	if actor.Role != models.RolePractitioner || actor.PractitionerID == 0 {
		return fmt.Errorf("only practitioners delete time blocks: %w", models.ErrForbidden)
	}
	return s.store.DeleteOwned(ctx, id, actor.PractitionerID)
}
