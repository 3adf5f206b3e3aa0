package repositories

import (
	"context"
	"sort"
	"sync"

	"inventaris/internal/models"
)

// MockReferenceRepository is an in-memory implementation of ReferenceRepository.
type MockReferenceRepository struct {
	jenis map[uint]models.Jenis
	ruang map[uint]models.Ruang
	mu    sync.RWMutex
}

// NewMockReferenceRepository creates a new instance of MockReferenceRepository.
func NewMockReferenceRepository() *MockReferenceRepository {
	return &MockReferenceRepository{
		jenis: make(map[uint]models.Jenis),
		ruang: make(map[uint]models.Ruang),
	}
}

// AddJenis seeds a jenis.
func (r *MockReferenceRepository) AddJenis(j models.Jenis) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jenis[j.ID] = j
}

// AddRuang seeds a ruang.
func (r *MockReferenceRepository) AddRuang(rg models.Ruang) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ruang[rg.ID] = rg
}

func (r *MockReferenceRepository) ListJenis(ctx context.Context) ([]models.Jenis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Jenis, 0, len(r.jenis))
	for _, j := range r.jenis {
		list = append(list, j)
	}
	sort.Slice(list, func(i, k int) bool { return list[i].ID < list[k].ID })
	return list, nil
}

func (r *MockReferenceRepository) ListRuang(ctx context.Context) ([]models.Ruang, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Ruang, 0, len(r.ruang))
	for _, rg := range r.ruang {
		list = append(list, rg)
	}
	sort.Slice(list, func(i, k int) bool { return list[i].ID < list[k].ID })
	return list, nil
}

func (r *MockReferenceRepository) JenisExists(ctx context.Context, id uint) (bool, error) {
	_, ok := r.jenisName(id)
	return ok, nil
}

func (r *MockReferenceRepository) RuangExists(ctx context.Context, id uint) (bool, error) {
	_, ok := r.ruangName(id)
	return ok, nil
}

func (r *MockReferenceRepository) jenisName(id uint) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jenis[id]
	return j.NamaJenis, ok
}

func (r *MockReferenceRepository) ruangName(id uint) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rg, ok := r.ruang[id]
	return rg.NamaRuang, ok
}
