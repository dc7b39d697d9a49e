package services

import (
	"context"

	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/models"
	"github.com/sergiomelomora-sketch/proyecto-kinesiologo-final/repositories"
)

type PractitionerService struct {
	repository *repositories.PractitionerRepository
}

func NewPractitionerService(repository *repositories.PractitionerRepository) *PractitionerService {
	return &PractitionerService{repository: repository}
}

func (s *PractitionerService) Create(ctx context.Context, practitioner *models.Practitioner) error {
	return s.repository.Create(ctx, practitioner)
}

func (s *PractitionerService) GetByID(ctx context.Context, id uint) (*models.Practitioner, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PractitionerService) GetByUserID(ctx context.Context, userID int64) (*models.Practitioner, error) {
	return s.repository.GetByUserID(ctx, userID)
}

func (s *PractitionerService) GetAll(ctx context.Context) ([]models.Practitioner, error) {
	return s.repository.GetAll(ctx)
}

func (s *PractitionerService) Update(ctx context.Context, practitioner *models.Practitioner) error {
	return s.repository.Update(ctx, practitioner)
}

func (s *PractitionerService) Delete(ctx context.Context, id uint) error {
	return s.repository.Delete(ctx, id)
}
