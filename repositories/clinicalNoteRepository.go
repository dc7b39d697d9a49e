package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/cache"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/database"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
)

const (
	ClinicalNoteCacheExpiry = 24 * time.Hour
)

type ClinicalNoteRepository struct {
	cache *cache.Cache
}

func NewClinicalNoteRepository(cache *cache.Cache) *ClinicalNoteRepository {
	return &ClinicalNoteRepository{cache: cache}
}

// SaveWithFinalize upserts the note and, in the same transaction, moves the
// appointment to FINALIZED if it is not there already. Saving a note and
// finalizing its appointment is one atomic command, never two writes that can
// be observed half-done. CreatedAt is preserved on edit.
func (r *ClinicalNoteRepository) SaveWithFinalize(ctx context.Context, note *models.ClinicalNote) error {
	lockKey := fmt.Sprintf("clinical_note_lock:%d", note.AppointmentID)
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
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "appointment_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"subjective", "objective", "analysis_plan", "updated_at",
			}),
		}).Create(note).Error; err != nil {
			return fmt.Errorf("failed to save clinical note: %w", err)
		}

		return tx.Model(&models.Appointment{}).
			Where("id = ? AND status <> ?", note.AppointmentID, models.AppointmentFinalized).
			Update("status", models.AppointmentFinalized).Error
	})
	if err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, r.getNoteCacheKey(note.AppointmentID)); err != nil {
		return fmt.Errorf("failed to delete clinical note cache: %w", err)
	}
	return r.cache.Delete(ctx, fmt.Sprintf("appointment_cache:%d", note.AppointmentID))
}

// GetByAppointment returns the note for an appointment, or (nil, nil) when it
// has not been written yet.
func (r *ClinicalNoteRepository) GetByAppointment(ctx context.Context, appointmentID uint) (*models.ClinicalNote, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getNoteCacheKey(appointmentID)
	cachedNote, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var note models.ClinicalNote
		if err := json.Unmarshal([]byte(cachedNote), &note); err == nil {
			return &note, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get clinical note from cache: %v", err)
	}

	var note models.ClinicalNote
	err = database.DB.First(&note, "appointment_id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get clinical note: %w", err)
	}

	noteJSON, err := json.Marshal(note)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal clinical note: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, noteJSON, ClinicalNoteCacheExpiry); err != nil {
		log.Printf("Failed to set clinical note in cache: %v", err)
	}

	return &note, nil
}

// ForPractitioner lists the notes authored by a practitioner, newest first.
func (r *ClinicalNoteRepository) ForPractitioner(ctx context.Context, practitionerID uint) ([]models.ClinicalNote, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var notes []models.ClinicalNote
	err := database.DB.WithContext(ctx).
		Where("practitioner_id = ?", practitionerID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list clinical notes: %w", err)
	}
	return notes, nil
}

// ForPatient lists the notes written about a patient, newest first.
func (r *ClinicalNoteRepository) ForPatient(ctx context.Context, patientID uint) ([]models.ClinicalNote, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var notes []models.ClinicalNote
	err := database.DB.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list clinical notes: %w", err)
	}
	return notes, nil
}

func (r *ClinicalNoteRepository) getNoteCacheKey(appointmentID uint) string {
	return fmt.Sprintf("clinical_note_cache:%d", appointmentID)
}
