package views_test

import (
	"bytes"
	"testing"

	"inventaris/internal/models"
	"inventaris/internal/views"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct{ NamaPetugas string }

func TestEngine_RenderIndex(t *testing.T) {
	engine := views.New("/storage/")
	require.NoError(t, engine.Load())

	image := "images/a.png"
	desc := "kayu"
	rows := []models.InventarisRow{
		{ID: 4, KodeInventaris: "AB1", NamaInventaris: "Kursi <lipat>", Jumlah: 2.5, TanggalRegister: "15/01/2024", Image: &image, Keterangan: &desc},
		{ID: 5, KodeInventaris: "AB2", NamaInventaris: "Meja", Jumlah: 3},
	}
	page := models.NewInventarisPage(rows, 4, 2, 2, "k", "/inventaris")

	var buf bytes.Buffer
	err := engine.Render(&buf, "inventaris/index", struct {
		Title string
		User  *user
		Flash string
		Page  *models.InventarisPage
	}{Title: "Data Inventaris", User: &user{NamaPetugas: "Administrator"}, Flash: "success store", Page: page})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "success store")
	assert.Contains(t, html, "Administrator")
	assert.Contains(t, html, "Kursi &lt;lipat&gt;")
	assert.Contains(t, html, `src="/storage/images/a.png"`)
	assert.Contains(t, html, "<td>2.5</td>")
	assert.Contains(t, html, "<td>3</td>")
	assert.Contains(t, html, "<td>kayu</td>")
	assert.Contains(t, html, "<td>3</td>\n\t\t\t<td>AB1</td>", "numbering starts at the page offset")
	assert.Contains(t, html, `/inventaris?page=1&amp;search=k`)
	assert.Contains(t, html, `action="/inventaris/4"`)
}

func TestEngine_RenderFormKeepsOldInput(t *testing.T) {
	engine := views.New("/storage")
	require.NoError(t, engine.Load())

	type old struct {
		KodeInventaris, NamaInventaris, Keterangan, JenisID, RuangID, Jumlah, Kondisi, TanggalRegister string
	}

	var buf bytes.Buffer
	err := engine.Render(&buf, "inventaris/create.html", struct {
		Title   string
		User    *user
		Flash   string
		Old     old
		Errors  map[string]string
		Options *models.FormOptions
		Image   *string
	}{
		Title:   "Tambah Inventaris",
		User:    &user{NamaPetugas: "Administrator"},
		Old:     old{KodeInventaris: "AB-1", JenisID: "2"},
		Errors:  map[string]string{"kode_inventaris": "The kode inventaris may only contain letters and numbers."},
		Options: &models.FormOptions{Jenis: []models.Option{{Value: 1, Label: "Mebel"}, {Value: 2, Label: "Elektronik"}}},
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `value="AB-1"`)
	assert.Contains(t, html, "The kode inventaris may only contain letters and numbers.")
	assert.Contains(t, html, `<option value="2" selected>Elektronik</option>`)
	assert.Contains(t, html, `<option value="1">Mebel</option>`)
	assert.Contains(t, html, `enctype="multipart/form-data"`)
}

func TestEngine_RenderUnknown(t *testing.T) {
	engine := views.New("")
	require.NoError(t, engine.Load())

	var buf bytes.Buffer
	assert.Error(t, engine.Render(&buf, "missing", nil))
}
