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
	PatientCacheExpiry = 7 * 24 * time.Hour
)

type PatientRepository struct {
	cache *cache.Cache
}

func NewPatientRepository(cache *cache.Cache) *PatientRepository {
	return &PatientRepository{cache: cache}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	lockKey := fmt.Sprintf("patient_lock:%d", patient.UserID)
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

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(patient).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("national ID or user already registered: %w", models.ErrConflict)
			}
			return fmt.Errorf("failed to create patient: %w", err)
		}
		return r.cache.DeleteAll(ctx, "patients_cache")
	})
}

func (r *PatientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getPatientCacheKey(id)
	cachedPatient, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var patient models.Patient
		if err := json.Unmarshal([]byte(cachedPatient), &patient); err == nil {
			return &patient, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	err = database.DB.First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	patientJSON, err := json.Marshal(patient)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patient: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, patientJSON, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patient in cache: %v", err)
	}

	return &patient, nil
}

// GetByUserID maps an authenticated identity to its patient record. Returns
// (nil, nil) when the user has no patient profile.
func (r *PatientRepository) GetByUserID(ctx context.Context, userID int64) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var patient models.Patient
	err := database.DB.WithContext(ctx).First(&patient, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient by user: %w", err)
	}
	return &patient, nil
}

func (r *PatientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "patients_cache"
	cachedPatients, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var patients []models.Patient
		if err := json.Unmarshal([]byte(cachedPatients), &patients); err == nil {
			return patients, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get patients from cache: %v", err)
	}

	var patients []models.Patient
	err = database.DB.WithContext(ctx).
		Order("last_name ASC").
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all patients: %w", err)
	}

	patientsJSON, err := json.Marshal(patients)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patients: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, patientsJSON, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patients in cache: %v", err)
	}

	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	lockKey := fmt.Sprintf("patient_lock:%d", patient.ID)
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

	err = database.DB.Save(patient).Error
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	if err := r.cache.Delete(ctx, r.getPatientCacheKey(patient.ID)); err != nil {
		return fmt.Errorf("failed to delete patient cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "patients_cache")
}

func (r *PatientRepository) Delete(ctx context.Context, id uint) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var appointments int64
		if err := tx.Model(&models.Appointment{}).Where("patient_id = ?", id).Count(&appointments).Error; err != nil {
			return fmt.Errorf("failed to count appointments: %w", err)
		}
		if appointments > 0 {
			return fmt.Errorf("patient still referenced by %d appointment(s): %w", appointments, models.ErrConflict)
		}
		return tx.Delete(&models.Patient{}, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return err
		}
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	if err := r.cache.Delete(ctx, r.getPatientCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete patient cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "patients_cache")
}

func (r *PatientRepository) getPatientCacheKey(id uint) string {
	return fmt.Sprintf("patient_cache:%d", id)
}
