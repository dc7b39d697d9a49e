package services

import (
	"context"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/repositories"
)

type PatientService struct {
	repository *repositories.PatientRepository
}

func NewPatientService(repository *repositories.PatientRepository) *PatientService {
	return &PatientService{repository: repository}
}

func (s *PatientService) Create(ctx context.Context, patient *models.Patient) error {
	return s.repository.Create(ctx, patient)
}

func (s *PatientService) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PatientService) GetByUserID(ctx context.Context, userID int64) (*models.Patient, error) {
	return s.repository.GetByUserID(ctx, userID)
}

func (s *PatientService) GetAll(ctx context.Context) ([]models.Patient, error) {
	return s.repository.GetAll(ctx)
}

func (s *PatientService) Update(ctx context.Context, patient *models.Patient) error {
	return s.repository.Update(ctx, patient)
}

func (s *PatientService) Delete(ctx context.Context, id uint) error {
	return s.repository.Delete(ctx, id)
}
