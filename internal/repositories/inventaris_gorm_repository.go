package repositories

import (
	"context"
	"errors"
	"fmt"

	"inventaris/internal/models"

	"gorm.io/gorm"
)

// GORMInventarisRepository is a GORM implementation of InventarisRepository.
type GORMInventarisRepository struct {
	db *gorm.DB
}

// NewGORMInventarisRepository creates a new instance of GORMInventarisRepository.
func NewGORMInventarisRepository(db *gorm.DB) *GORMInventarisRepository {
	return &GORMInventarisRepository{
		db: db,
	}
}

// listQuery builds the joined listing query. A fresh statement is returned on
// every call so Count and Scan do not share state.
func (r *GORMInventarisRepository) listQuery(ctx context.Context, search string) *gorm.DB {
	q := r.db.WithContext(ctx).
		Table("inventaris").
		Joins("JOIN jenis ON jenis.id = inventaris.jenis_id").
		Joins("JOIN ruangs ON ruangs.id = inventaris.ruang_id").
		Joins("JOIN petugas ON petugas.id = inventaris.petugas_id")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("inventaris.kode_inventaris LIKE ? OR inventaris.nama_inventaris LIKE ?", like, like)
	}
	return q
}

// List returns one page of joined inventaris rows and the total match count.
func (r *GORMInventarisRepository) List(ctx context.Context, filter InventarisFilter) ([]models.InventarisRow, int64, error) {
	var total int64
	if err := r.listQuery(ctx, filter.Search).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inventaris: %w", err)
	}

	var rows []models.InventarisRow
	err := r.listQuery(ctx, filter.Search).
		Select(`inventaris.id AS id,
			inventaris.keterangan AS keterangan,
			inventaris.kode_inventaris,
			inventaris.nama_inventaris,
			jenis.nama_jenis,
			ruangs.nama_ruang,
			petugas.nama_petugas,
			inventaris.tanggal_register,
			inventaris.kondisi,
			inventaris.jumlah,
			inventaris.image`).
		Order("inventaris.id ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inventaris: %w", err)
	}
	return rows, total, nil
}

// GetByID retrieves a single inventaris by its ID.
func (r *GORMInventarisRepository) GetByID(ctx context.Context, id uint) (*models.Inventaris, error) {
	var item models.Inventaris
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("inventaris with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get inventaris by ID %d: %w", id, err)
	}
	return &item, nil
}

// KodeExists checks the unique kode rule, skipping excludeID.
func (r *GORMInventarisRepository) KodeExists(ctx context.Context, kode string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Inventaris{}).Where("kode_inventaris = ?", kode)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check kode %s: %w", kode, err)
	}
	return count > 0, nil
}

// Create inserts a new inventaris.
func (r *GORMInventarisRepository) Create(ctx context.Context, item *models.Inventaris) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return translateError("failed to create inventaris", err)
	}
	return nil
}

// Update rewrites every column of an existing inventaris.
func (r *GORMInventarisRepository) Update(ctx context.Context, item *models.Inventaris) error {
	res := r.db.WithContext(ctx).
		Model(&models.Inventaris{ID: item.ID}).
		Select("*").
		Omit("id", "created_at", "petugas_id").
		Updates(item)
	if res.Error != nil {
		return translateError("failed to update inventaris", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("inventaris with ID %d for update: %w", item.ID, ErrNotFound)
	}
	return nil
}

// Delete removes an inventaris by its ID.
func (r *GORMInventarisRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Inventaris{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete inventaris: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("inventaris with ID %d for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// translateError maps the unique index violation onto ErrDuplicateKode. The
// database handle is opened with TranslateError so drivers report it as
// gorm.ErrDuplicatedKey.
func translateError(msg string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", msg, ErrDuplicateKode)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
