package models

import "time"

// DateLayout is the storage form of tanggal_register.
const DateLayout = "2006-01-02"

// DisplayDateLayout is the form tanggal_register is shown to users in.
const DisplayDateLayout = "02/01/2006"

// Inventaris represents a registered physical asset.
type Inventaris struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	KodeInventaris  string    `json:"kode_inventaris" gorm:"uniqueIndex;size:10;not null"`
	NamaInventaris  string    `json:"nama_inventaris" gorm:"size:255;not null"`
	Keterangan      *string   `json:"keterangan" gorm:"size:255"`
	JenisID         uint      `json:"jenis_id" gorm:"not null;index"`
	RuangID         uint      `json:"ruang_id" gorm:"not null;index"`
	PetugasID       uint      `json:"petugas_id" gorm:"not null;index"`
	Jumlah          float64   `json:"jumlah" gorm:"not null"`
	Kondisi         string    `json:"kondisi" gorm:"size:255;not null"`
	TanggalRegister string    `json:"tanggal_register" gorm:"size:10;not null"`
	Image           *string   `json:"image" gorm:"size:255"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName pins the table name to the legacy schema.
func (Inventaris) TableName() string { return "inventaris" }

// HasImage reports whether a blob is attached.
func (i *Inventaris) HasImage() bool {
	return i.Image != nil && *i.Image != ""
}

// KeteranganValue returns the description or an empty string.
func (i *Inventaris) KeteranganValue() string {
	if i.Keterangan == nil {
		return ""
	}
	return *i.Keterangan
}

// InventarisRow is the denormalized listing projection.
type InventarisRow struct {
	ID              uint    `json:"id" gorm:"column:id"`
	Keterangan      *string `json:"keterangan" gorm:"column:keterangan"`
	KodeInventaris  string  `json:"kode_inventaris" gorm:"column:kode_inventaris"`
	NamaInventaris  string  `json:"nama_inventaris" gorm:"column:nama_inventaris"`
	NamaJenis       string  `json:"nama_jenis" gorm:"column:nama_jenis"`
	NamaRuang       string  `json:"nama_ruang" gorm:"column:nama_ruang"`
	NamaPetugas     string  `json:"nama_petugas" gorm:"column:nama_petugas"`
	TanggalRegister string  `json:"tanggal_register" gorm:"column:tanggal_register"`
	Kondisi         string  `json:"kondisi" gorm:"column:kondisi"`
	Jumlah          float64 `json:"jumlah" gorm:"column:jumlah"`
	Image           *string `json:"image" gorm:"column:image"`
}

// FormatTanggal converts a stored YYYY-MM-DD date to DD/MM/YYYY. Values that
// do not parse are returned as given.
func FormatTanggal(iso string) string {
	t, err := time.Parse(DateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format(DisplayDateLayout)
}
