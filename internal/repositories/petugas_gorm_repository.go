package repositories

import (
	"context"
	"errors"
	"fmt"

	"inventaris/internal/models"

	"gorm.io/gorm"
)

// GORMPetugasRepository is a GORM implementation of PetugasRepository.
type GORMPetugasRepository struct {
	db *gorm.DB
}

// NewGORMPetugasRepository creates a new instance of GORMPetugasRepository.
func NewGORMPetugasRepository(db *gorm.DB) *GORMPetugasRepository {
	return &GORMPetugasRepository{
		db: db,
	}
}

// Create creates a new petugas in the database.
func (r *GORMPetugasRepository) Create(ctx context.Context, petugas *models.Petugas) error {
	if err := r.db.WithContext(ctx).Create(petugas).Error; err != nil {
		return fmt.Errorf("failed to create petugas: %w", err)
	}
	return nil
}

// GetByUsername retrieves a petugas by username.
func (r *GORMPetugasRepository) GetByUsername(ctx context.Context, username string) (*models.Petugas, error) {
	var petugas models.Petugas
	if err := r.db.WithContext(ctx).First(&petugas, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("petugas with username %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get petugas by username %s: %w", username, err)
	}
	return &petugas, nil
}

// GetByID retrieves a petugas by ID.
func (r *GORMPetugasRepository) GetByID(ctx context.Context, id uint) (*models.Petugas, error) {
	var petugas models.Petugas
	if err := r.db.WithContext(ctx).First(&petugas, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("petugas with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get petugas by ID %d: %w", id, err)
	}
	return &petugas, nil
}
