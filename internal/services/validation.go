package services

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// InventarisInput lists exactly the form fields create and update accept.
// Anything else in the request is ignored.
type InventarisInput struct {
	KodeInventaris  string `form:"kode_inventaris" validate:"required,max=10,alphanum"`
	NamaInventaris  string `form:"nama_inventaris" validate:"required,max=255"`
	Keterangan      string `form:"keterangan" validate:"omitempty,max=255"`
	JenisID         string `form:"jenis_id" validate:"required,number"`
	RuangID         string `form:"ruang_id" validate:"required,number"`
	Jumlah          string `form:"jumlah" validate:"required"`
	Kondisi         string `form:"kondisi" validate:"required,max=255"`
	TanggalRegister string `form:"tanggal_register" validate:"required,datetime=2006-01-02"`
}

func (in *InventarisInput) trim() {
	in.KodeInventaris = strings.TrimSpace(in.KodeInventaris)
	in.NamaInventaris = strings.TrimSpace(in.NamaInventaris)
	in.Keterangan = strings.TrimSpace(in.Keterangan)
	in.JenisID = strings.TrimSpace(in.JenisID)
	in.RuangID = strings.TrimSpace(in.RuangID)
	in.Jumlah = strings.TrimSpace(in.Jumlah)
	in.Kondisi = strings.TrimSpace(in.Kondisi)
	in.TanggalRegister = strings.TrimSpace(in.TanggalRegister)
}

// newValidator reports fields under their form names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// collect converts validator output into a ValidationError.
func collect(err error, into *ValidationError) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	for _, e := range verrs {
		into.Add(e.Field(), message(e.Field(), e.Tag(), e.Param()))
	}
	return nil
}

func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func message(field, tag, param string) string {
	name := label(field)
	switch tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", name, param)
	case "alphanum":
		return fmt.Sprintf("The %s may only contain letters and numbers.", name)
	case "number", "exists":
		return fmt.Sprintf("The selected %s is invalid.", name)
	case "numeric":
		return fmt.Sprintf("The %s must be a number.", name)
	case "datetime":
		return fmt.Sprintf("The %s does not match the format Y-m-d.", name)
	case "unique":
		return fmt.Sprintf("The %s has already been taken.", name)
	default:
		return fmt.Sprintf("The %s is invalid.", name)
	}
}
