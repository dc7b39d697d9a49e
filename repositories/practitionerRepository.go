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
	PractitionerCacheExpiry = 7 * 24 * time.Hour
)

type PractitionerRepository struct {
	cache *cache.Cache
}

func NewPractitionerRepository(cache *cache.Cache) *PractitionerRepository {
	return &PractitionerRepository{cache: cache}
}

func (r *PractitionerRepository) Create(ctx context.Context, practitioner *models.Practitioner) error {
	lockKey := fmt.Sprintf("practitioner_lock:%s", practitioner.LicenseNumber)
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
		if err := tx.Create(practitioner).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("license number already registered: %w", models.ErrConflict)
			}
			return fmt.Errorf("failed to create practitioner: %w", err)
		}
		return r.cache.DeleteAll(ctx, "practitioners_cache")
	})
}

func (r *PractitionerRepository) GetByID(ctx context.Context, id uint) (*models.Practitioner, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getPractitionerCacheKey(id)
	cachedPractitioner, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var practitioner models.Practitioner
		if err := json.Unmarshal([]byte(cachedPractitioner), &practitioner); err == nil {
			return &practitioner, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get practitioner from cache: %v", err)
	}

	var practitioner models.Practitioner
	err = database.DB.First(&practitioner, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get practitioner: %w", err)
	}

	practitionerJSON, err := json.Marshal(practitioner)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal practitioner: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, practitionerJSON, PractitionerCacheExpiry); err != nil {
		log.Printf("Failed to set practitioner in cache: %v", err)
	}

	return &practitioner, nil
}

// GetByUserID maps an authenticated identity to its practitioner record.
// Returns (nil, nil) when the user has no practitioner profile.
func (r *PractitionerRepository) GetByUserID(ctx context.Context, userID int64) (*models.Practitioner, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var practitioner models.Practitioner
	err := database.DB.WithContext(ctx).First(&practitioner, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get practitioner by user: %w", err)
	}
	return &practitioner, nil
}

func (r *PractitionerRepository) GetAll(ctx context.Context) ([]models.Practitioner, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "practitioners_cache"
	cachedPractitioners, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var practitioners []models.Practitioner
		if err := json.Unmarshal([]byte(cachedPractitioners), &practitioners); err == nil {
			return practitioners, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get practitioners from cache: %v", err)
	}

	var practitioners []models.Practitioner
	err = database.DB.WithContext(ctx).
		Order("last_name ASC").
		Find(&practitioners).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all practitioners: %w", err)
	}

	practitionersJSON, err := json.Marshal(practitioners)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal practitioners: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, practitionersJSON, PractitionerCacheExpiry); err != nil {
		log.Printf("Failed to set practitioners in cache: %v", err)
	}

	return practitioners, nil
}

func (r *PractitionerRepository) Update(ctx context.Context, practitioner *models.Practitioner) error {
	lockKey := fmt.Sprintf("practitioner_lock:%d", practitioner.ID)
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

	err = database.DB.Save(practitioner).Error
	if err != nil {
		return fmt.Errorf("failed to update practitioner: %w", err)
	}
	if err := r.cache.Delete(ctx, r.getPractitionerCacheKey(practitioner.ID)); err != nil {
		return fmt.Errorf("failed to delete practitioner cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "practitioners_cache")
}

// Delete removes a practitioner. Referential protection: the delete is refused
// while appointments or time blocks still reference the record.
func (r *PractitionerRepository) Delete(ctx context.Context, id uint) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var appointments int64
		if err := tx.Model(&models.Appointment{}).Where("practitioner_id = ?", id).Count(&appointments).Error; err != nil {
			return fmt.Errorf("failed to count appointments: %w", err)
		}
		var blocks int64
		if err := tx.Model(&models.TimeBlock{}).Where("practitioner_id = ?", id).Count(&blocks).Error; err != nil {
			return fmt.Errorf("failed to count time blocks: %w", err)
		}
		if appointments > 0 || blocks > 0 {
			return fmt.Errorf("practitioner still referenced by %d appointment(s) and %d block(s): %w",
				appointments, blocks, models.ErrConflict)
		}
		return tx.Delete(&models.Practitioner{}, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return err
		}
		return fmt.Errorf("failed to delete practitioner: %w", err)
	}

	if err := r.cache.Delete(ctx, r.getPractitionerCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete practitioner cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "practitioners_cache")
}

func (r *PractitionerRepository) getPractitionerCacheKey(id uint) string {
	return fmt.Sprintf("practitioner_cache:%d", id)
}
