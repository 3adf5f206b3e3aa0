package app_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inventaris/internal/app"
	"inventaris/internal/config"
	"inventaris/internal/database"
	"inventaris/internal/models"
	"inventaris/internal/repositories"
	"inventaris/internal/services"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func testConfig(t *testing.T, driver, dsn string) *config.Config {
	return &config.Config{
		DatabaseDriver: driver,
		DatabaseDSN:    dsn,
		JWTSecret:      "test_jwt_secret",
		StorageRoot:    t.TempDir(),
		StorageURL:     "/storage",
		PageSize:       15,
	}
}

func TestNew_MemoryDriver(t *testing.T) {
	a, err := app.New(testConfig(t, database.DriverMemory, ""), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Close()

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, false, health["rabbit"])

	resp, err = a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/inventaris", resp.Header.Get("Location"))

	resp, err = a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/inventaris", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestNew_SQLiteDriver(t *testing.T) {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	a, err := app.New(testConfig(t, database.DriverSQLite, dsn), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Close()

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health["database"])
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := app.New(testConfig(t, "mysql", ""), nil)
	assert.Error(t, err)
}

func TestStoredImagesAreServed(t *testing.T) {
	refs := repositories.NewMockReferenceRepository()
	refs.AddJenis(models.Jenis{ID: 1, NamaJenis: "Elektronik"})
	refs.AddRuang(models.Ruang{ID: 1, NamaRuang: "Laboratorium"})
	petugas := repositories.NewMockPetugasRepository()
	files := afero.NewBasePathFs(afero.NewMemMapFs(), "/")

	a, err := app.NewWithDeps(testConfig(t, database.DriverMemory, ""), nil, &app.Deps{
		Inventaris: repositories.NewMockInventarisRepository(refs, petugas),
		References: refs,
		Petugas:    petugas,
		Files:      files,
	})
	require.NoError(t, err)

	item, err := a.Inventaris.Create(context.Background(), 1, services.InventarisInput{
		KodeInventaris:  "PRJ1",
		NamaInventaris:  "Proyektor",
		JenisID:         "1",
		RuangID:         "1",
		Jumlah:          "1",
		Kondisi:         "Baik",
		TanggalRegister: "2024-03-01",
	}, &services.ImageUpload{Filename: "p.png", Content: pngBytes})
	require.NoError(t, err)
	require.NotNil(t, item.Image)

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/storage/"+*item.Image, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, body)

	resp, err = a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/storage/images/missing.png", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNew_BootstrapsAdmin(t *testing.T) {
	cfg := testConfig(t, database.DriverMemory, "")
	cfg.AdminUsername = "admin"
	cfg.AdminPassword = "rahasia123"

	a, err := app.New(cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	token, err := a.Auth.Login(context.Background(), "admin", "rahasia123")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/inventaris/create", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	resp, err := a.Fiber.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Laboratorium", "in-memory driver is seeded with reference rows")
}

func TestNew_BootstrapKeepsExistingAdmin(t *testing.T) {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	cfg := testConfig(t, database.DriverSQLite, dsn)
	cfg.AdminUsername = "admin"
	cfg.AdminPassword = "rahasia123"

	first, err := app.New(cfg, nil)
	require.NoError(t, err)
	defer first.Close()

	cfg.AdminPassword = "lain-lagi"
	second, err := app.New(cfg, nil)
	require.NoError(t, err)
	defer second.Close()

	_, err = second.Auth.Login(context.Background(), "admin", "rahasia123")
	assert.NoError(t, err, "existing admin is left untouched")
}
