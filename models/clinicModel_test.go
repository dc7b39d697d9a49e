package models

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical", at(0), at(60), at(0), at(60), true},
		{"contained", at(0), at(60), at(15), at(30), true},
		{"partial overlap left", at(0), at(60), at(-30), at(30), true},
		{"partial overlap right", at(0), at(60), at(30), at(90), true},
		{"touching end to start", at(0), at(60), at(60), at(120), false},
		{"touching start to end", at(60), at(120), at(0), at(60), false},
		{"disjoint", at(0), at(60), at(120), at(180), false},
		// Half-open intersection: a<d AND c<b. An empty interval strictly
		// inside a non-empty one satisfies both comparisons.
		{"empty interval inside", at(0), at(60), at(30), at(30), true},
		{"empty interval at start boundary", at(0), at(60), at(0), at(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps(%v, %v, %v, %v) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}

func TestAppointmentEndTime(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	a := Appointment{StartTime: start, DurationMinutes: 45}
	want := start.Add(45 * time.Minute)
	if got := a.EndTime(); !got.Equal(want) {
		t.Errorf("EndTime() = %v, want %v", got, want)
	}
}

func TestAppointmentIsTerminal(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{AppointmentPending, false},
		{AppointmentConfirmed, false},
		{AppointmentFinalized, true},
		{AppointmentCancelled, true},
	}
	for _, tt := range tests {
		a := Appointment{Status: tt.status}
		if got := a.IsTerminal(); got != tt.want {
			t.Errorf("IsTerminal() with status %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}
