package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/cache"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/database"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
)

type TimeBlockRepository struct {
	cache *cache.Cache
}

func NewTimeBlockRepository(cache *cache.Cache) *TimeBlockRepository {
	return &TimeBlockRepository{cache: cache}
}

// Create inserts a time block after verifying, inside the same transaction,
// that it does not overlap any PENDING or CONFIRMED appointment of the
// practitioner. Overlap with cancelled or finalized appointments is allowed.
func (r *TimeBlockRepository) Create(ctx context.Context, block *models.TimeBlock) error {
	lockKey := fmt.Sprintf("time_block_lock:%d", block.PractitionerID)
	lockValue := uuid.New().String()
	locked, err := acquireLockWithRetry(ctx, lockKey, lockValue)
	if err != nil || !locked {
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var overlapping int64
		err := tx.Model(&models.Appointment{}).
			Where("practitioner_id = ? AND status IN ?", block.PractitionerID,
				[]string{models.AppointmentPending, models.AppointmentConfirmed}).
			Where("start_time < ? AND start_time + (duration_minutes * INTERVAL '1 minute') > ?",
				block.EndTime, block.StartTime).
			Count(&overlapping).Error
		if err != nil {
			return fmt.Errorf("failed to check for overlapping appointments: %w", err)
		}
		if overlapping > 0 {
			return fmt.Errorf("block overlaps %d scheduled appointment(s): %w", overlapping, models.ErrConflict)
		}
		return tx.Create(block).Error
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return err
		}
		return fmt.Errorf("failed to create time block: %w", err)
	}
	return nil
}

// ForPractitionerDay returns the blocks of the practitioner touching the day
// [dayStart, dayEnd).
func (r *TimeBlockRepository) ForPractitionerDay(ctx context.Context, practitionerID uint, dayStart, dayEnd time.Time) ([]models.TimeBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var blocks []models.TimeBlock
	err := database.DB.WithContext(ctx).
		Where("practitioner_id = ? AND start_time < ? AND end_time > ?", practitionerID, dayEnd, dayStart).
		Order("start_time ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list time blocks for day: %w", err)
	}
	return blocks, nil
}

// UpcomingForPractitioner lists the practitioner's blocks from the given
// instant on.
func (r *TimeBlockRepository) UpcomingForPractitioner(ctx context.Context, practitionerID uint, from time.Time) ([]models.TimeBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var blocks []models.TimeBlock
	err := database.DB.WithContext(ctx).
		Where("practitioner_id = ? AND end_time >= ?", practitionerID, from).
		Order("start_time ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming time blocks: %w", err)
	}
	return blocks, nil
}

// DeleteOwned hard-deletes a block, but only when it belongs to the given
// practitioner. A missing or foreign block reports models.ErrNotFound without
// revealing which of the two it was.
func (r *TimeBlockRepository) DeleteOwned(ctx context.Context, id, practitionerID uint) error {
	result := database.DB.WithContext(ctx).
		Delete(&models.TimeBlock{}, "id = ? AND practitioner_id = ?", id, practitionerID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete time block: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
