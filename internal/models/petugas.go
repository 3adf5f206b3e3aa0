package models

import "time"

// Petugas is a staff member allowed to sign in to the admin area.
type Petugas struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"uniqueIndex;size:100;not null" validate:"required,min=3,max=100"`
	Password    string    `json:"-" gorm:"size:255;not null" validate:"required,min=6"`
	NamaPetugas string    `json:"nama_petugas" gorm:"size:255;not null" validate:"required,max=255"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Petugas) TableName() string { return "petugas" }
