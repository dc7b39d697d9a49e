package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/config"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/services"
)

type stubAppointmentDays struct{ appointments []models.Appointment }

func (s *stubAppointmentDays) ForPractitionerDay(ctx context.Context, practitionerID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	return s.appointments, nil
}

type stubTimeBlockDays struct{ blocks []models.TimeBlock }

func (s *stubTimeBlockDays) ForPractitionerDay(ctx context.Context, practitionerID uint, dayStart, dayEnd time.Time) ([]models.TimeBlock, error) {
	return s.blocks, nil
}

func availabilityRouter(appointments []models.Appointment) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewAvailabilityService(
		&stubAppointmentDays{appointments: appointments},
		&stubTimeBlockDays{},
		&config.AppConfig{},
	)
	router := gin.New()
	router.GET("/available_slots", NewAvailabilityHandler(svc).GetAvailableSlots)
	return router
}

func TestGetAvailableSlots(t *testing.T) {
	router := availabilityRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/available_slots?practitioner_id=1&date=2026-03-02", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		Horarios []models.TimeSlot `json:"horarios"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the expected shape: %v", err)
	}
	if len(body.Horarios) != 9 {
		t.Fatalf("got %d slots, want 9", len(body.Horarios))
	}
	if body.Horarios[0].Hora != "09:00" {
		t.Errorf("first slot hora = %s, want 09:00", body.Horarios[0].Hora)
	}
}

func TestGetAvailableSlotsParamValidation(t *testing.T) {
	router := availabilityRouter(nil)

	tests := []struct {
		name  string
		query string
	}{
		{"missing practitioner", "/available_slots?date=2026-03-02"},
		{"zero practitioner", "/available_slots?practitioner_id=0&date=2026-03-02"},
		{"non-numeric practitioner", "/available_slots?practitioner_id=abc&date=2026-03-02"},
		{"missing date", "/available_slots?practitioner_id=1"},
		{"malformed date", "/available_slots?practitioner_id=1&date=03/02/2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.query, nil)
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body = %s", w.Code, w.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("error body missing: %s", w.Body.String())
			}
		})
	}
}
