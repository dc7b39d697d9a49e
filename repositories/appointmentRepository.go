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

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/cache"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/database"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
)

const (
	AppointmentCacheExpiry = 24 * time.Hour
)

type AppointmentRepository struct {
	cache *cache.Cache
}

func NewAppointmentRepository(cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{cache: cache}
}

// Create inserts a new appointment. The (practitioner_id, start_time) unique
// index is the arbiter against double booking: of two concurrent writers
// claiming the same slot, exactly one commit succeeds and the other surfaces
// models.ErrConflict. The Redis lock only narrows the race window.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	lockKey := fmt.Sprintf("appointment_slot_lock:%d_%d", appointment.PractitionerID, appointment.StartTime.Unix())
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
		return tx.Create(appointment).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("slot %s already taken: %w", appointment.StartTime.Format("2006-01-02 15:04"), models.ErrConflict)
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	return r.invalidate(ctx, appointment.ID)
}

// GetByID loads an appointment with its practitioner and patient. Returns
// (nil, nil) when absent.
func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getAppointmentCacheKey(id)
	cachedAppointment, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var appointment models.Appointment
		if err := json.Unmarshal([]byte(cachedAppointment), &appointment); err == nil {
			return &appointment, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get appointment from cache: %v", err)
	}

	var appointment models.Appointment
	err = database.DB.
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, first_name, last_name")
		}).
		Preload("Practitioner", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, user_id, first_name, last_name, specialty")
		}).
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	appointmentJSON, err := json.Marshal(appointment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointment: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, appointmentJSON, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointment in cache: %v", err)
	}

	return &appointment, nil
}

// ForPractitionerDay returns every appointment of the practitioner starting
// inside [dayStart, dayEnd), regardless of status. The availability engine
// treats all of them as busy, cancelled ones included.
func (r *AppointmentRepository) ForPractitionerDay(ctx context.Context, practitionerID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Where("practitioner_id = ? AND start_time >= ? AND start_time < ?", practitionerID, dayStart, dayEnd).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for day: %w", err)
	}
	return appointments, nil
}

// UpcomingForPatient returns the patient's agenda from the given instant on.
func (r *AppointmentRepository) UpcomingForPatient(ctx context.Context, patientID uint, from time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Preload("Practitioner", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name, specialty")
		}).
		Where("patient_id = ? AND start_time >= ?", patientID, from).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return appointments, nil
}

// UpcomingForPractitioner returns the practitioner's upcoming appointments,
// excluding FINALIZED ones. Cancelled appointments stay visible on the
// dashboard so the practitioner sees freed slots.
func (r *AppointmentRepository) UpcomingForPractitioner(ctx context.Context, practitionerID uint, from time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name, phone")
		}).
		Where("practitioner_id = ? AND start_time >= ? AND status <> ?", practitionerID, from, models.AppointmentFinalized).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list practitioner appointments: %w", err)
	}
	return appointments, nil
}

// UpdateStatus persists a status transition decided by the service layer.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	lockKey := fmt.Sprintf("appointment_lock:%d", id)
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
		result := tx.Model(&models.Appointment{}).Where("id = ?", id).Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	return r.invalidate(ctx, id)
}

func (r *AppointmentRepository) invalidate(ctx context.Context, id uint) error {
	if err := r.cache.Delete(ctx, r.getAppointmentCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete appointment cache: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) getAppointmentCacheKey(id uint) string {
	return fmt.Sprintf("appointment_cache:%d", id)
}

// acquireLockWithRetry wraps database.NewLock with the retry policy shared by
// all write paths.
func acquireLockWithRetry(ctx context.Context, key, value string) (bool, error) {
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, key, value, 10*time.Second)
		if err == nil && locked {
			return true, nil
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	return locked, err
}
