package utils

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateBookingRequest validates the fields of an appointment booking request.
func ValidateBookingRequest(practitionerID uint, startTime string) error {
	return validation.Errors{
		"practitioner_id": validation.Validate(practitionerID, validation.Required),
		"start_time":      validation.Validate(startTime, validation.Required, validation.Date("2006-01-02T15:04:05Z07:00")),
	}.Filter()
}

// ValidateBlockRequest validates the fields of a schedule block request.
func ValidateBlockRequest(startTime, endTime string) error {
	return validation.Errors{
		"start_time": validation.Validate(startTime, validation.Required, validation.Date("2006-01-02T15:04:05Z07:00")),
		"end_time":   validation.Validate(endTime, validation.Required, validation.Date("2006-01-02T15:04:05Z07:00")),
	}.Filter()
}

// ValidateNoteRequest validates the SOAP fields of a clinical note.
func ValidateNoteRequest(subjective, objective, analysisPlan string) error {
	return validation.Errors{
		"subjective":    validation.Validate(subjective, validation.Required, validation.Length(1, 10000)),
		"objective":     validation.Validate(objective, validation.Required, validation.Length(1, 10000)),
		"analysis_plan": validation.Validate(analysisPlan, validation.Required, validation.Length(1, 10000)),
	}.Filter()
}
