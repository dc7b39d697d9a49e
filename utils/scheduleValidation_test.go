package utils

import "testing"

func TestValidateBookingRequest(t *testing.T) {
	if err := ValidateBookingRequest(1, "2026-03-02T10:00:00Z"); err != nil {
		t.Errorf("valid booking rejected: %v", err)
	}
	if err := ValidateBookingRequest(0, "2026-03-02T10:00:00Z"); err == nil {
		t.Error("zero practitioner accepted")
	}
	if err := ValidateBookingRequest(1, ""); err == nil {
		t.Error("empty start time accepted")
	}
	if err := ValidateBookingRequest(1, "2026-03-02 10:00"); err == nil {
		t.Error("non-RFC3339 start time accepted")
	}
}

func TestValidateBlockRequest(t *testing.T) {
	if err := ValidateBlockRequest("2026-03-02T10:00:00Z", "2026-03-02T12:00:00Z"); err != nil {
		t.Errorf("valid block rejected: %v", err)
	}
	if err := ValidateBlockRequest("", "2026-03-02T12:00:00Z"); err == nil {
		t.Error("missing start accepted")
	}
	if err := ValidateBlockRequest("2026-03-02T10:00:00Z", "noon"); err == nil {
		t.Error("malformed end accepted")
	}
}

func TestValidateNoteRequest(t *testing.T) {
	if err := ValidateNoteRequest("s", "o", "ap"); err != nil {
		t.Errorf("valid note rejected: %v", err)
	}
	if err := ValidateNoteRequest("", "o", "ap"); err == nil {
		t.Error("empty subjective accepted")
	}
	if err := ValidateNoteRequest("s", "", ""); err == nil {
		t.Error("empty objective and plan accepted")
	}
}
