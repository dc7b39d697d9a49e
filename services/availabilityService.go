package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/config"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
)

// AppointmentDayLister provides the appointments blocking a practitioner's day.
type AppointmentDayLister interface {
	ForPractitionerDay(ctx context.Context, practitionerID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error)
}

// TimeBlockDayLister provides the time blocks covering a practitioner's day.
type TimeBlockDayLister interface {
	ForPractitionerDay(ctx context.Context, practitionerID uint, dayStart, dayEnd time.Time) ([]models.TimeBlock, error)
}

// AvailabilityService computes the free slots of a practitioner's working day.
// It is a pure read: the result is advisory and a returned slot can still be
// claimed by a concurrent booking, the appointment unique index settles that
// race at write time.
type AvailabilityService struct {
	appointments AppointmentDayLister
	blocks       TimeBlockDayLister

	businessStartHour int
	businessEndHour   int
	slotMinutes       int
}

func NewAvailabilityService(appointments AppointmentDayLister, blocks TimeBlockDayLister, cfg *config.AppConfig) *AvailabilityService {
	// A zero hour means unset: the env loader only accepts positive values,
	// so each field defaults on its own. An inverted pair falls back to the
	// defaults entirely rather than producing an empty day.
	startHour, endHour, slotMinutes := cfg.BusinessStartHour, cfg.BusinessEndHour, cfg.SlotMinutes
	if startHour <= 0 {
		startHour = config.DefaultBusinessStartHour
	}
	if endHour <= 0 {
		endHour = config.DefaultBusinessEndHour
	}
	if endHour <= startHour {
		startHour, endHour = config.DefaultBusinessStartHour, config.DefaultBusinessEndHour
	}
	if slotMinutes <= 0 {
		slotMinutes = config.DefaultSlotMinutes
	}
	return &AvailabilityService{
		appointments:      appointments,
		blocks:            blocks,
		businessStartHour: startHour,
		businessEndHour:   endHour,
		slotMinutes:       slotMinutes,
	}
}

// ComputeFreeSlots returns the open slots of the practitioner on the given
// date (format 2006-01-02), ascending. Every appointment of the day blocks a
// slot regardless of its status: cancelled appointments count as busy too.
func (s *AvailabilityService) ComputeFreeSlots(ctx context.Context, practitionerID uint, dateStr string) ([]models.TimeSlot, error) {
	if practitionerID == 0 {
		return nil, fmt.Errorf("missing practitioner: %w", models.ErrBadRequest)
	}
	if dateStr == "" {
		return nil, fmt.Errorf("missing date: %w", models.ErrBadRequest)
	}

	day, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", dateStr, models.ErrBadRequest)
	}

	dayStart := day.Add(time.Duration(s.businessStartHour) * time.Hour)
	dayEnd := day.Add(time.Duration(s.businessEndHour) * time.Hour)

	appointments, err := s.appointments.ForPractitionerDay(ctx, practitionerID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	blocks, err := s.blocks.ForPractitionerDay(ctx, practitionerID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	busy := make([]models.Interval, 0, len(appointments)+len(blocks))
	for i := range appointments {
		busy = append(busy, models.Interval{Start: appointments[i].StartTime, End: appointments[i].EndTime()})
	}
	for i := range blocks {
		busy = append(busy, models.Interval{Start: blocks[i].StartTime, End: blocks[i].EndTime})
	}

	return FreeSlots(dayStart, dayEnd, s.slotMinutes, busy), nil
}

// FreeSlots enumerates candidate slots of slotMinutes length on a fixed grid
// from dayStart, keeping those that end by dayEnd and intersect no busy
// interval. With no busy intervals the result is the full even grid.
func FreeSlots(dayStart, dayEnd time.Time, slotMinutes int, busy []models.Interval) []models.TimeSlot {
	stride := time.Duration(slotMinutes) * time.Minute
	slots := []models.TimeSlot{}

	for cursor := dayStart; cursor.Before(dayEnd); cursor = cursor.Add(stride) {
		slotEnd := cursor.Add(stride)

		available := true
		for _, interval := range busy {
			if models.Overlaps(cursor, slotEnd, interval.Start, interval.End) {
				available = false
				break
			}
		}

		if available && !slotEnd.After(dayEnd) {
			slots = append(slots, models.TimeSlot{
				Hora:  cursor.Format("15:04"),
				Valor: cursor.Format(time.RFC3339),
			})
		}
	}

	return slots
}
