package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/config"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
)

type fakeAppointmentDayLister struct {
	appointments []models.Appointment
	err          error
}

func (f *fakeAppointmentDayLister) ForPractitionerDay(ctx context.Context, practitionerID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	return f.appointments, f.err
}

type fakeTimeBlockDayLister struct {
	blocks []models.TimeBlock
	err    error
}

func (f *fakeTimeBlockDayLister) ForPractitionerDay(ctx context.Context, practitionerID uint, dayStart, dayEnd time.Time) ([]models.TimeBlock, error) {
	return f.blocks, f.err
}

func newAvailability(appointments []models.Appointment, blocks []models.TimeBlock) *AvailabilityService {
	return NewAvailabilityService(
		&fakeAppointmentDayLister{appointments: appointments},
		&fakeTimeBlockDayLister{blocks: blocks},
		&config.AppConfig{},
	)
}

func localTime(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.Local)
}

func slotHours(slots []models.TimeSlot) []string {
	hours := make([]string, len(slots))
	for i, s := range slots {
		hours[i] = s.Hora
	}
	return hours
}

func TestComputeFreeSlotsEmptyDay(t *testing.T) {
	svc := newAvailability(nil, nil)

	slots, err := svc.ComputeFreeSlots(context.Background(), 1, "2026-03-02")
	if err != nil {
		t.Fatalf("ComputeFreeSlots() error = %v", err)
	}

	want := []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}
	got := slotHours(slots)
	if len(got) != len(want) {
		t.Fatalf("got %d slots %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	// valor must round-trip as RFC3339 back to the slot start.
	first, err := time.Parse(time.RFC3339, slots[0].Valor)
	if err != nil {
		t.Fatalf("valor %q is not RFC3339: %v", slots[0].Valor, err)
	}
	if !first.Equal(localTime(9, 0)) {
		t.Errorf("valor = %v, want %v", first, localTime(9, 0))
	}
}

func TestComputeFreeSlotsExcludesBookedSlot(t *testing.T) {
	svc := newAvailability([]models.Appointment{
		{StartTime: localTime(10, 0), DurationMinutes: 60, Status: models.AppointmentConfirmed},
	}, nil)

	slots, err := svc.ComputeFreeSlots(context.Background(), 1, "2026-03-02")
	if err != nil {
		t.Fatalf("ComputeFreeSlots() error = %v", err)
	}
	if len(slots) != 8 {
		t.Fatalf("got %d slots %v, want 8", len(slots), slotHours(slots))
	}
	for _, s := range slots {
		if s.Hora == "10:00" {
			t.Error("booked slot 10:00 is still offered")
		}
	}
}

func TestComputeFreeSlotsCancelledStillBlocks(t *testing.T) {
	svc := newAvailability([]models.Appointment{
		{StartTime: localTime(11, 0), DurationMinutes: 60, Status: models.AppointmentCancelled},
	}, nil)

	slots, err := svc.ComputeFreeSlots(context.Background(), 1, "2026-03-02")
	if err != nil {
		t.Fatalf("ComputeFreeSlots() error = %v", err)
	}
	for _, s := range slots {
		if s.Hora == "11:00" {
			t.Error("slot of a cancelled appointment is offered, want it blocked")
		}
	}
}

func TestComputeFreeSlotsExcludesTimeBlock(t *testing.T) {
	svc := newAvailability(nil, []models.TimeBlock{
		{StartTime: localTime(13, 0), EndTime: localTime(15, 0)},
	})

	slots, err := svc.ComputeFreeSlots(context.Background(), 1, "2026-03-02")
	if err != nil {
		t.Fatalf("ComputeFreeSlots() error = %v", err)
	}
	got := slotHours(slots)
	for _, hour := range got {
		if hour == "13:00" || hour == "14:00" {
			t.Errorf("blocked slot %s is still offered", hour)
		}
	}
	if len(got) != 7 {
		t.Errorf("got %d slots %v, want 7", len(got), got)
	}
}

func TestComputeFreeSlotsPartialOverlapBlocksWholeSlot(t *testing.T) {
	// A block covering 10:30-11:30 straddles two grid slots; both go away.
	svc := newAvailability(nil, []models.TimeBlock{
		{StartTime: localTime(10, 30), EndTime: localTime(11, 30)},
	})

	slots, err := svc.ComputeFreeSlots(context.Background(), 1, "2026-03-02")
	if err != nil {
		t.Fatalf("ComputeFreeSlots() error = %v", err)
	}
	for _, s := range slots {
		if s.Hora == "10:00" || s.Hora == "11:00" {
			t.Errorf("partially blocked slot %s is still offered", s.Hora)
		}
	}
}

func TestComputeFreeSlotsValidation(t *testing.T) {
	svc := newAvailability(nil, nil)

	tests := []struct {
		name           string
		practitionerID uint
		date           string
	}{
		{"zero practitioner", 0, "2026-03-02"},
		{"empty date", 1, ""},
		{"malformed date", 1, "02-03-2026"},
		{"garbage date", 1, "not-a-date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ComputeFreeSlots(context.Background(), tt.practitionerID, tt.date)
			if !errors.Is(err, models.ErrBadRequest) {
				t.Errorf("ComputeFreeSlots() error = %v, want ErrBadRequest", err)
			}
		})
	}
}

func TestFreeSlotsRespectsDayEnd(t *testing.T) {
	dayStart := localTime(9, 0)
	dayEnd := localTime(12, 30)

	// 90-minute slots: 09:00 and 10:30 fit, 12:00 would end past 12:30.
	slots := FreeSlots(dayStart, dayEnd, 90, nil)
	got := slotHours(slots)
	want := []string{"09:00", "10:30"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNewAvailabilityServiceDefaultsPerField(t *testing.T) {
	compute := func(cfg *config.AppConfig) []string {
		svc := NewAvailabilityService(&fakeAppointmentDayLister{}, &fakeTimeBlockDayLister{}, cfg)
		slots, err := svc.ComputeFreeSlots(context.Background(), 1, "2026-03-02")
		if err != nil {
			t.Fatalf("ComputeFreeSlots() error = %v", err)
		}
		return slotHours(slots)
	}

	// Only the end set: start falls back to 09, not to an empty day.
	got := compute(&config.AppConfig{BusinessEndHour: 14})
	if len(got) != 5 || got[0] != "09:00" || got[len(got)-1] != "13:00" {
		t.Errorf("end-only config slots = %v, want 09:00 through 13:00", got)
	}

	// Only the start set: end falls back to 18.
	got = compute(&config.AppConfig{BusinessStartHour: 16})
	if len(got) != 2 || got[0] != "16:00" || got[1] != "17:00" {
		t.Errorf("start-only config slots = %v, want [16:00 17:00]", got)
	}

	// Inverted pair yields the full default grid, never zero slots.
	got = compute(&config.AppConfig{BusinessStartHour: 18, BusinessEndHour: 9})
	if len(got) != 9 || got[0] != "09:00" {
		t.Errorf("inverted config slots = %v, want the default 09:00-17:00 grid", got)
	}
}
