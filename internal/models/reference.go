package models

// Jenis is an asset category.
type Jenis struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	NamaJenis string `json:"nama_jenis" gorm:"size:255;not null"`
}

func (Jenis) TableName() string { return "jenis" }

// Ruang is a physical location assets are assigned to.
type Ruang struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	NamaRuang string `json:"nama_ruang" gorm:"size:255;not null"`
}

func (Ruang) TableName() string { return "ruangs" }

// Option is a select box entry.
type Option struct {
	Value uint   `json:"value"`
	Label string `json:"label"`
}

// FormOptions holds the reference lists shown on the create and edit forms.
type FormOptions struct {
	Jenis []Option `json:"jenis"`
	Ruang []Option `json:"ruang"`
}
