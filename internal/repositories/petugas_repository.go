package repositories

import (
	"context"

	"inventaris/internal/models"
)

// PetugasRepository defines the interface for staff account data access.
type PetugasRepository interface {
	Create(ctx context.Context, petugas *models.Petugas) error
	GetByUsername(ctx context.Context, username string) (*models.Petugas, error)
	GetByID(ctx context.Context, id uint) (*models.Petugas, error)
}
