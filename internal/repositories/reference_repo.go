package repositories

import (
	"context"

	"inventaris/internal/models"
)

// ReferenceRepository gives read access to the jenis and ruang tables.
type ReferenceRepository interface {
	ListJenis(ctx context.Context) ([]models.Jenis, error)
	ListRuang(ctx context.Context) ([]models.Ruang, error)
	JenisExists(ctx context.Context, id uint) (bool, error)
	RuangExists(ctx context.Context, id uint) (bool, error)
}
