package repositories

import (
	"context"

	"inventaris/internal/models"
)

// InventarisFilter narrows and pages the inventaris listing.
type InventarisFilter struct {
	Search string
	Offset int
	Limit  int
}

// InventarisRepository defines the interface for inventaris data access.
type InventarisRepository interface {
	List(ctx context.Context, filter InventarisFilter) ([]models.InventarisRow, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Inventaris, error)
	// KodeExists reports whether kode is taken by an item other than excludeID.
	// An excludeID of 0 excludes nothing.
	KodeExists(ctx context.Context, kode string, excludeID uint) (bool, error)
	Create(ctx context.Context, item *models.Inventaris) error
	Update(ctx context.Context, item *models.Inventaris) error
	Delete(ctx context.Context, id uint) error
}
