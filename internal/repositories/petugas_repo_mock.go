package repositories

import (
	"context"
	"fmt"
	"sync"

	"inventaris/internal/models"
)

// MockPetugasRepository is an in-memory implementation of PetugasRepository.
type MockPetugasRepository struct {
	petugas map[uint]models.Petugas
	nextID  uint
	mu      sync.RWMutex
}

// NewMockPetugasRepository creates a new instance of MockPetugasRepository.
func NewMockPetugasRepository() *MockPetugasRepository {
	return &MockPetugasRepository{
		petugas: make(map[uint]models.Petugas),
		nextID:  1,
	}
}

func (r *MockPetugasRepository) Create(ctx context.Context, petugas *models.Petugas) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.petugas {
		if p.Username == petugas.Username {
			return fmt.Errorf("failed to create petugas: username %s already exists", petugas.Username)
		}
	}
	if petugas.ID == 0 {
		petugas.ID = r.nextID
	}
	if petugas.ID >= r.nextID {
		r.nextID = petugas.ID + 1
	}
	r.petugas[petugas.ID] = *petugas
	return nil
}

func (r *MockPetugasRepository) GetByUsername(ctx context.Context, username string) (*models.Petugas, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.petugas {
		if p.Username == username {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("petugas with username %s: %w", username, ErrNotFound)
}

func (r *MockPetugasRepository) GetByID(ctx context.Context, id uint) (*models.Petugas, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.petugas[id]
	if !ok {
		return nil, fmt.Errorf("petugas with ID %d: %w", id, ErrNotFound)
	}
	return &p, nil
}

func (r *MockPetugasRepository) name(id uint) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.petugas[id]
	return p.NamaPetugas, ok
}
