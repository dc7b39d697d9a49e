package models

import (
	"time"
)

// Appointment lifecycle states. PENDING is the initial state set on booking;
// CANCELLED and FINALIZED are terminal.
const (
	AppointmentPending   = "PENDING"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentFinalized = "FINALIZED"
	AppointmentCancelled = "CANCELLED"
)

// Coverage options for a patient (public insurance, private insurance, out of pocket).
const (
	CoverageFonasa     = "F"
	CoverageIsapre     = "I"
	CoverageParticular = "P"
)

// Practitioner model
type Practitioner struct {
	ID            uint           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID        int64          `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	FirstName     string         `gorm:"column:first_name;not null" json:"first_name"`
	LastName      string         `gorm:"column:last_name;not null;index" json:"last_name"`
	Specialty     string         `gorm:"column:specialty;not null" json:"specialty"`
	LicenseNumber string         `gorm:"column:license_number;not null;unique" json:"license_number"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Appointments  []Appointment  `gorm:"foreignKey:PractitionerID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
	TimeBlocks    []TimeBlock    `gorm:"foreignKey:PractitionerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	ClinicalNotes []ClinicalNote `gorm:"foreignKey:PractitionerID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Practitioner) TableName() string {
	return "practitioner"
}

// Patient model
type Patient struct {
	ID             uint          `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID         int64         `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	FirstName      string        `gorm:"column:first_name;not null" json:"first_name"`
	LastName       string        `gorm:"column:last_name;not null;index" json:"last_name"`
	NationalID     *string       `gorm:"column:national_id;unique" json:"national_id"`
	Phone          string        `gorm:"column:phone;not null" json:"phone"`
	Address        string        `gorm:"column:address" json:"address"`
	Coverage       string        `gorm:"column:coverage;check:coverage IN ('F', 'I', 'P');not null;default:'F'" json:"coverage"`
	MedicalHistory string        `gorm:"column:medical_history;type:text" json:"medical_history"`
	CreatedAt      time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Appointments   []Appointment `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// Appointment model. The composite unique index on (practitioner_id, start_time)
// is the write-time arbiter for double booking; application-level checks are
// advisory only. Appointments are never hard-deleted, cancellation is a status
// transition.
type Appointment struct {
	ID              uint         `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	PractitionerID  uint         `gorm:"column:practitioner_id;not null;index;uniqueIndex:idx_practitioner_start" json:"practitioner_id"`
	PatientID       uint         `gorm:"column:patient_id;not null;index" json:"patient_id"`
	StartTime       time.Time    `gorm:"column:start_time;not null;index;uniqueIndex:idx_practitioner_start" json:"start_time"`
	DurationMinutes int          `gorm:"column:duration_minutes;not null;default:60" json:"duration_minutes"`
	Reason          string       `gorm:"column:reason;type:text" json:"reason"`
	Status          string       `gorm:"column:status;check:status IN ('PENDING', 'CONFIRMED', 'FINALIZED', 'CANCELLED');not null;default:'PENDING'" json:"status"`
	CreatedAt       time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Practitioner    Practitioner `gorm:"foreignKey:PractitionerID;references:ID" json:"practitioner"`
	Patient         Patient      `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// EndTime derives the end of the appointment from its start and duration.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsTerminal reports whether the appointment is in a state that rejects
// every further transition.
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentFinalized || a.Status == AppointmentCancelled
}

// TimeBlock model. Practitioner-declared unavailability (vacation, admin time).
// Unlike appointments, blocks are hard-deleted when no longer needed.
type TimeBlock struct {
	ID             uint         `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	PractitionerID uint         `gorm:"column:practitioner_id;not null;index" json:"practitioner_id"`
	StartTime      time.Time    `gorm:"column:start_time;not null;index" json:"start_time"`
	EndTime        time.Time    `gorm:"column:end_time;not null" json:"end_time"`
	Reason         string       `gorm:"column:reason" json:"reason"`
	Practitioner   Practitioner `gorm:"foreignKey:PractitionerID;references:ID" json:"-"`
}

func (TimeBlock) TableName() string {
	return "time_block"
}

// ClinicalNote model (SOAP record). One note per appointment, sharing the
// appointment's primary key. Practitioner and patient are denormalized from
// the appointment so notes can be listed per person without joining through it.
type ClinicalNote struct {
	AppointmentID  uint         `gorm:"primaryKey;column:appointment_id" json:"appointment_id"`
	PractitionerID uint         `gorm:"column:practitioner_id;not null;index" json:"practitioner_id"`
	PatientID      uint         `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Subjective     string       `gorm:"column:subjective;type:text;not null" json:"subjective"`
	Objective      string       `gorm:"column:objective;type:text;not null" json:"objective"`
	AnalysisPlan   string       `gorm:"column:analysis_plan;type:text;not null" json:"analysis_plan"`
	CreatedAt      time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Appointment    Appointment  `gorm:"foreignKey:AppointmentID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Practitioner   Practitioner `gorm:"foreignKey:PractitionerID;references:ID" json:"-"`
	Patient        Patient      `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (ClinicalNote) TableName() string {
	return "clinical_note"
}

// Interval is a half-open time interval [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// TimeSlot is one bookable slot offered by the availability query.
// The JSON field names are part of the wire contract consumed by the
// booking form.
type TimeSlot struct {
	Hora  string `json:"hora"`
	Valor string `json:"valor"`
}
