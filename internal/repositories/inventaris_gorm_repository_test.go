package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"inventaris/internal/database"
	"inventaris/internal/models"
	"inventaris/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedReferences(t *testing.T, db *gorm.DB) (jenisID, ruangID, petugasID uint) {
	t.Helper()
	jenis := models.Jenis{NamaJenis: "Mebel"}
	ruang := models.Ruang{NamaRuang: "Gudang"}
	petugas := models.Petugas{Username: "admin", Password: "hash", NamaPetugas: "Administrator"}
	require.NoError(t, db.Create(&jenis).Error)
	require.NoError(t, db.Create(&ruang).Error)
	require.NoError(t, db.Create(&petugas).Error)
	return jenis.ID, ruang.ID, petugas.ID
}

func newItem(kode, nama string, jenisID, ruangID, petugasID uint) *models.Inventaris {
	return &models.Inventaris{
		KodeInventaris:  kode,
		NamaInventaris:  nama,
		JenisID:         jenisID,
		RuangID:         ruangID,
		PetugasID:       petugasID,
		Jumlah:          1,
		Kondisi:         "Baik",
		TanggalRegister: "2024-01-15",
	}
}

func TestGORMInventarisRepository_ListJoinsAndSearches(t *testing.T) {
	db := database.NewTestDB(t)
	repo := repositories.NewGORMInventarisRepository(db)
	ctx := context.Background()
	jenisID, ruangID, petugasID := seedReferences(t, db)

	require.NoError(t, repo.Create(ctx, newItem("AB1", "Chair", jenisID, ruangID, petugasID)))
	require.NoError(t, repo.Create(ctx, newItem("XY9", "Table INV-1 oak", jenisID, ruangID, petugasID)))
	require.NoError(t, repo.Create(ctx, newItem("INV1", "Lamp", jenisID, ruangID, petugasID)))

	rows, total, err := repo.List(ctx, repositories.InventarisFilter{Limit: 15})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 3)
	assert.Equal(t, "AB1", rows[0].KodeInventaris)
	assert.Equal(t, "Mebel", rows[0].NamaJenis)
	assert.Equal(t, "Gudang", rows[0].NamaRuang)
	assert.Equal(t, "Administrator", rows[0].NamaPetugas)
	assert.Equal(t, "2024-01-15", rows[0].TanggalRegister)

	rows, total, err = repo.List(ctx, repositories.InventarisFilter{Search: "INV-1", Limit: 15})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "XY9", rows[0].KodeInventaris)

	rows, total, err = repo.List(ctx, repositories.InventarisFilter{Search: "INV1", Limit: 15})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Lamp", rows[0].NamaInventaris)
}

func TestGORMInventarisRepository_ListPaginates(t *testing.T) {
	db := database.NewTestDB(t)
	repo := repositories.NewGORMInventarisRepository(db)
	ctx := context.Background()
	jenisID, ruangID, petugasID := seedReferences(t, db)

	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Create(ctx, newItem(fmt.Sprintf("K%d", i), fmt.Sprintf("Item %d", i), jenisID, ruangID, petugasID)))
	}

	rows, total, err := repo.List(ctx, repositories.InventarisFilter{Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "K3", rows[0].KodeInventaris)
	assert.Equal(t, "K4", rows[1].KodeInventaris)
}

func TestGORMInventarisRepository_UniqueKode(t *testing.T) {
	db := database.NewTestDB(t)
	repo := repositories.NewGORMInventarisRepository(db)
	ctx := context.Background()
	jenisID, ruangID, petugasID := seedReferences(t, db)

	first := newItem("AB12CD", "Chair", jenisID, ruangID, petugasID)
	require.NoError(t, repo.Create(ctx, first))

	exists, err := repo.KodeExists(ctx, "AB12CD", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.KodeExists(ctx, "AB12CD", first.ID)
	require.NoError(t, err)
	assert.False(t, exists, "the item itself is excluded")

	err = repo.Create(ctx, newItem("AB12CD", "Other", jenisID, ruangID, petugasID))
	assert.ErrorIs(t, err, repositories.ErrDuplicateKode)
}

func TestGORMInventarisRepository_UpdateRewritesFields(t *testing.T) {
	db := database.NewTestDB(t)
	repo := repositories.NewGORMInventarisRepository(db)
	ctx := context.Background()
	jenisID, ruangID, petugasID := seedReferences(t, db)

	desc := "old"
	item := newItem("AB1", "Chair", jenisID, ruangID, petugasID)
	item.Keterangan = &desc
	require.NoError(t, repo.Create(ctx, item))

	update := *item
	update.NamaInventaris = "Armchair"
	update.Keterangan = nil
	update.Jumlah = 0
	update.PetugasID = 999
	require.NoError(t, repo.Update(ctx, &update))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Armchair", got.NamaInventaris)
	assert.Nil(t, got.Keterangan)
	assert.Equal(t, float64(0), got.Jumlah)
	assert.Equal(t, petugasID, got.PetugasID, "petugas is never rewritten")

	missing := *item
	missing.ID = 4242
	assert.ErrorIs(t, repo.Update(ctx, &missing), repositories.ErrNotFound)
}

func TestGORMInventarisRepository_Delete(t *testing.T) {
	db := database.NewTestDB(t)
	repo := repositories.NewGORMInventarisRepository(db)
	ctx := context.Background()
	jenisID, ruangID, petugasID := seedReferences(t, db)

	item := newItem("AB1", "Chair", jenisID, ruangID, petugasID)
	require.NoError(t, repo.Create(ctx, item))

	require.NoError(t, repo.Delete(ctx, item.ID))
	_, err := repo.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, item.ID), repositories.ErrNotFound)
}

func TestGORMReferenceRepository(t *testing.T) {
	db := database.NewTestDB(t)
	repo := repositories.NewGORMReferenceRepository(db)
	ctx := context.Background()
	jenisID, ruangID, _ := seedReferences(t, db)

	jenis, err := repo.ListJenis(ctx)
	require.NoError(t, err)
	require.Len(t, jenis, 1)
	assert.Equal(t, "Mebel", jenis[0].NamaJenis)

	ruang, err := repo.ListRuang(ctx)
	require.NoError(t, err)
	require.Len(t, ruang, 1)

	ok, err := repo.JenisExists(ctx, jenisID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.RuangExists(ctx, ruangID+100)
	require.NoError(t, err)
	assert.False(t, ok)
}
