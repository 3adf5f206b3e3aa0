package repositories

import (
	"context"
	"fmt"

	"inventaris/internal/models"

	"gorm.io/gorm"
)

// GORMReferenceRepository is a GORM implementation of ReferenceRepository.
type GORMReferenceRepository struct {
	db *gorm.DB
}

// NewGORMReferenceRepository creates a new instance of GORMReferenceRepository.
func NewGORMReferenceRepository(db *gorm.DB) *GORMReferenceRepository {
	return &GORMReferenceRepository{db: db}
}

func (r *GORMReferenceRepository) ListJenis(ctx context.Context) ([]models.Jenis, error) {
	var jenis []models.Jenis
	if err := r.db.WithContext(ctx).Order("id").Find(&jenis).Error; err != nil {
		return nil, fmt.Errorf("failed to list jenis: %w", err)
	}
	return jenis, nil
}

func (r *GORMReferenceRepository) ListRuang(ctx context.Context) ([]models.Ruang, error) {
	var ruang []models.Ruang
	if err := r.db.WithContext(ctx).Order("id").Find(&ruang).Error; err != nil {
		return nil, fmt.Errorf("failed to list ruang: %w", err)
	}
	return ruang, nil
}

func (r *GORMReferenceRepository) JenisExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &models.Jenis{}, id)
}

func (r *GORMReferenceRepository) RuangExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &models.Ruang{}, id)
}

func (r *GORMReferenceRepository) exists(ctx context.Context, model any, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up reference %d: %w", id, err)
	}
	return count > 0, nil
}
