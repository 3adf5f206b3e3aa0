package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"inventaris/internal/models"
)

// MockInventarisRepository is an in-memory implementation of InventarisRepository.
// Listing joins against the reference and petugas mocks it was built with.
type MockInventarisRepository struct {
	items   map[uint]models.Inventaris
	nextID  uint
	refs    *MockReferenceRepository
	petugas *MockPetugasRepository
	mu      sync.RWMutex
}

// NewMockInventarisRepository creates a new instance of MockInventarisRepository.
func NewMockInventarisRepository(refs *MockReferenceRepository, petugas *MockPetugasRepository) *MockInventarisRepository {
	return &MockInventarisRepository{
		items:   make(map[uint]models.Inventaris),
		nextID:  1,
		refs:    refs,
		petugas: petugas,
	}
}

// List returns rows ordered by ID, mirroring the inner joins of the SQL query.
func (r *MockInventarisRepository) List(ctx context.Context, filter InventarisFilter) ([]models.InventarisRow, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]uint, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var matched []models.InventarisRow
	for _, id := range ids {
		item := r.items[id]
		if filter.Search != "" &&
			!strings.Contains(item.KodeInventaris, filter.Search) &&
			!strings.Contains(item.NamaInventaris, filter.Search) {
			continue
		}
		jenis, okJ := r.refs.jenisName(item.JenisID)
		ruang, okR := r.refs.ruangName(item.RuangID)
		petugas, okP := r.petugas.name(item.PetugasID)
		if !okJ || !okR || !okP {
			continue
		}
		matched = append(matched, models.InventarisRow{
			ID:              item.ID,
			Keterangan:      item.Keterangan,
			KodeInventaris:  item.KodeInventaris,
			NamaInventaris:  item.NamaInventaris,
			NamaJenis:       jenis,
			NamaRuang:       ruang,
			NamaPetugas:     petugas,
			TanggalRegister: item.TanggalRegister,
			Kondisi:         item.Kondisi,
			Jumlah:          item.Jumlah,
			Image:           item.Image,
		})
	}

	total := int64(len(matched))
	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	return matched[start:end], total, nil
}

// GetByID returns an inventaris by its ID.
func (r *MockInventarisRepository) GetByID(ctx context.Context, id uint) (*models.Inventaris, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("inventaris with ID %d: %w", id, ErrNotFound)
	}
	return &item, nil
}

func (r *MockInventarisRepository) KodeExists(ctx context.Context, kode string, excludeID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.kodeTaken(kode, excludeID), nil
}

func (r *MockInventarisRepository) kodeTaken(kode string, excludeID uint) bool {
	for id, item := range r.items {
		if id != excludeID && item.KodeInventaris == kode {
			return true
		}
	}
	return false
}

// Create adds a new inventaris, enforcing the unique kode like the SQL index.
func (r *MockInventarisRepository) Create(ctx context.Context, item *models.Inventaris) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.kodeTaken(item.KodeInventaris, 0) {
		return fmt.Errorf("failed to create inventaris: %w", ErrDuplicateKode)
	}
	if item.ID == 0 {
		item.ID = r.nextID
	}
	if item.ID >= r.nextID {
		r.nextID = item.ID + 1
	}
	r.items[item.ID] = *item
	return nil
}

// Update replaces an existing inventaris, keeping its petugas.
func (r *MockInventarisRepository) Update(ctx context.Context, item *models.Inventaris) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("inventaris with ID %d for update: %w", item.ID, ErrNotFound)
	}
	if r.kodeTaken(item.KodeInventaris, item.ID) {
		return fmt.Errorf("failed to update inventaris: %w", ErrDuplicateKode)
	}
	updated := *item
	updated.PetugasID = existing.PetugasID
	updated.CreatedAt = existing.CreatedAt
	r.items[item.ID] = updated
	return nil
}

// Delete removes an inventaris by its ID.
func (r *MockInventarisRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("inventaris with ID %d for deletion: %w", id, ErrNotFound)
	}
	delete(r.items, id)
	return nil
}
