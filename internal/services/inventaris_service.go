package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"inventaris/internal/models"
	"inventaris/internal/repositories"
	"inventaris/internal/storage"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrUnauthenticated is returned by Create when no petugas identity was supplied.
var ErrUnauthenticated = errors.New("no authenticated petugas")

// EventPublisher receives inventaris change events.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// EditForm is the data behind the edit form.
type EditForm struct {
	Inventaris *models.Inventaris
	Options    *models.FormOptions
}

// InventarisService handles business logic related to inventaris.
type InventarisService struct {
	repo     repositories.InventarisRepository
	refs     repositories.ReferenceRepository
	blobs    storage.BlobStore
	events   EventPublisher
	validate *validator.Validate
	perPage  int
	log      *zap.Logger
}

// NewInventarisService creates a new InventarisService. events and log may be nil.
func NewInventarisService(
	repo repositories.InventarisRepository,
	refs repositories.ReferenceRepository,
	blobs storage.BlobStore,
	events EventPublisher,
	perPage int,
	log *zap.Logger,
) *InventarisService {
	if log == nil {
		log = zap.NewNop()
	}
	if perPage < 1 {
		perPage = 15
	}
	return &InventarisService{
		repo:     repo,
		refs:     refs,
		blobs:    blobs,
		events:   events,
		validate: newValidator(),
		perPage:  perPage,
		log:      log,
	}
}

// List returns one page of the joined listing, filtered by search on kode or
// nama. Dates are reformatted for display.
func (s *InventarisService) List(ctx context.Context, search string, page int) (*models.InventarisPage, error) {
	search = strings.TrimSpace(search)
	if page < 1 {
		page = 1
	}

	rows, total, err := s.repo.List(ctx, repositories.InventarisFilter{
		Search: search,
		Offset: (page - 1) * s.perPage,
		Limit:  s.perPage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list inventaris: %w", err)
	}
	for i := range rows {
		rows[i].TanggalRegister = models.FormatTanggal(rows[i].TanggalRegister)
	}
	return models.NewInventarisPage(rows, total, s.perPage, page, search, ""), nil
}

// CreateFormOptions returns every jenis and ruang as select options.
func (s *InventarisService) CreateFormOptions(ctx context.Context) (*models.FormOptions, error) {
	jenis, err := s.refs.ListJenis(ctx)
	if err != nil {
		return nil, err
	}
	ruang, err := s.refs.ListRuang(ctx)
	if err != nil {
		return nil, err
	}

	opts := &models.FormOptions{
		Jenis: make([]models.Option, 0, len(jenis)),
		Ruang: make([]models.Option, 0, len(ruang)),
	}
	for _, j := range jenis {
		opts.Jenis = append(opts.Jenis, models.Option{Value: j.ID, Label: j.NamaJenis})
	}
	for _, r := range ruang {
		opts.Ruang = append(opts.Ruang, models.Option{Value: r.ID, Label: r.NamaRuang})
	}
	return opts, nil
}

// EditFormOptions returns the item together with the form options.
func (s *InventarisService) EditFormOptions(ctx context.Context, id uint) (*EditForm, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	opts, err := s.CreateFormOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &EditForm{Inventaris: item, Options: opts}, nil
}

// Create validates the input and registers a new inventaris on behalf of
// petugasID. The image, when given, is stored before the row is written and
// removed again if the write fails.
func (s *InventarisService) Create(ctx context.Context, petugasID uint, in InventarisInput, img *ImageUpload) (*models.Inventaris, error) {
	if petugasID == 0 {
		return nil, ErrUnauthenticated
	}

	v, err := s.check(ctx, &in, img, 0)
	if err != nil {
		return nil, err
	}

	item := &models.Inventaris{PetugasID: petugasID}
	v.apply(item)

	if img != nil {
		p, err := s.storeImage(ctx, img, v.ext)
		if err != nil {
			return nil, err
		}
		item.Image = &p
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if item.Image != nil {
			s.discard(ctx, *item.Image)
		}
		if errors.Is(err, repositories.ErrDuplicateKode) {
			return nil, kodeTaken()
		}
		return nil, fmt.Errorf("failed to create inventaris: %w", err)
	}

	s.log.Info("inventaris created",
		zap.Uint("id", item.ID),
		zap.String("kode", item.KodeInventaris),
		zap.Uint("petugas_id", petugasID))
	s.publish("inventaris.created", item)
	return item, nil
}

// Update overwrites every field of an existing inventaris. Without a new
// image the stored one is kept. With one, the new blob is stored and the row
// saved before the previous blob is deleted.
func (s *InventarisService) Update(ctx context.Context, id uint, in InventarisInput, img *ImageUpload) (*models.Inventaris, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v, err := s.check(ctx, &in, img, id)
	if err != nil {
		return nil, err
	}
	v.apply(item)

	previous := item.Image
	var stored string
	if img != nil {
		stored, err = s.storeImage(ctx, img, v.ext)
		if err != nil {
			return nil, err
		}
		item.Image = &stored
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if stored != "" {
			s.discard(ctx, stored)
		}
		if errors.Is(err, repositories.ErrDuplicateKode) {
			return nil, kodeTaken()
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update inventaris %d: %w", id, err)
	}

	if stored != "" && previous != nil && *previous != "" {
		// The row already points at the new blob; a failure here only leaves
		// the old file behind.
		if err := s.blobs.Delete(ctx, *previous); err != nil {
			s.log.Warn("failed to delete replaced image", zap.String("path", *previous), zap.Error(err))
		}
	}

	s.log.Info("inventaris updated", zap.Uint("id", item.ID), zap.String("kode", item.KodeInventaris))
	s.publish("inventaris.updated", item)
	return item, nil
}

// Delete removes the item's image, then the item itself.
func (s *InventarisService) Delete(ctx context.Context, id uint) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if item.HasImage() {
		if err := s.blobs.Delete(ctx, *item.Image); err != nil {
			return &StorageError{Op: "delete", Path: *item.Image, Err: err}
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("inventaris deleted", zap.Uint("id", id), zap.String("kode", item.KodeInventaris))
	s.publish("inventaris.deleted", item)
	return nil
}

// Show is not offered; every id is reported as not found.
func (s *InventarisService) Show(ctx context.Context, id uint) error {
	return fmt.Errorf("inventaris detail %d: %w", id, ErrNotFound)
}

// validated holds converted input that passed every rule.
type validated struct {
	kode       string
	nama       string
	keterangan *string
	jenisID    uint
	ruangID    uint
	jumlah     float64
	kondisi    string
	tanggal    string
	ext        string
}

func (v *validated) apply(item *models.Inventaris) {
	item.KodeInventaris = v.kode
	item.NamaInventaris = v.nama
	item.Keterangan = v.keterangan
	item.JenisID = v.jenisID
	item.RuangID = v.ruangID
	item.Jumlah = v.jumlah
	item.Kondisi = v.kondisi
	item.TanggalRegister = v.tanggal
}

// check runs the field rules, the unique kode rule (ignoring excludeID) and
// the referential lookups. All problems are reported together.
func (s *InventarisService) check(ctx context.Context, in *InventarisInput, img *ImageUpload, excludeID uint) (*validated, error) {
	in.trim()
	ve := &ValidationError{}
	if err := collect(s.validate.Struct(in), ve); err != nil {
		return nil, fmt.Errorf("failed to validate input: %w", err)
	}

	v := &validated{
		kode:    strings.ToUpper(strings.ToLower(in.KodeInventaris)),
		nama:    in.NamaInventaris,
		kondisi: in.Kondisi,
		tanggal: in.TanggalRegister,
	}
	if in.Keterangan != "" {
		k := in.Keterangan
		v.keterangan = &k
	}

	if _, bad := ve.Fields["kode_inventaris"]; !bad {
		taken, err := s.repo.KodeExists(ctx, v.kode, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			ve.Add("kode_inventaris", message("kode_inventaris", "unique", ""))
		}
	}

	var err error
	if v.jenisID, err = s.reference(ctx, ve, "jenis_id", in.JenisID, s.refs.JenisExists); err != nil {
		return nil, err
	}
	if v.ruangID, err = s.reference(ctx, ve, "ruang_id", in.RuangID, s.refs.RuangExists); err != nil {
		return nil, err
	}

	if _, bad := ve.Fields["jumlah"]; !bad {
		v.jumlah, err = strconv.ParseFloat(in.Jumlah, 64)
		if err != nil || math.IsNaN(v.jumlah) || math.IsInf(v.jumlah, 0) {
			ve.Add("jumlah", message("jumlah", "numeric", ""))
		}
	}

	if img != nil {
		ext, msg := img.check()
		if msg != "" {
			ve.Add("image", msg)
		}
		v.ext = ext
	}

	if !ve.empty() {
		return nil, ve
	}
	return v, nil
}

func (s *InventarisService) reference(ctx context.Context, ve *ValidationError, field, raw string, exists func(context.Context, uint) (bool, error)) (uint, error) {
	if _, bad := ve.Fields[field]; bad {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		ve.Add(field, message(field, "exists", ""))
		return 0, nil
	}
	ok, err := exists(ctx, uint(id))
	if err != nil {
		return 0, err
	}
	if !ok {
		ve.Add(field, message(field, "exists", ""))
	}
	return uint(id), nil
}

func (s *InventarisService) storeImage(ctx context.Context, img *ImageUpload, ext string) (string, error) {
	p, err := s.blobs.Store(ctx, storage.ImageNamespace, ext, bytes.NewReader(img.Content))
	if err != nil {
		return "", &StorageError{Op: "store", Err: err}
	}
	return p, nil
}

// discard removes a blob written for a row that was never saved.
func (s *InventarisService) discard(ctx context.Context, p string) {
	if err := s.blobs.Delete(ctx, p); err != nil {
		s.log.Warn("failed to remove orphaned image", zap.String("path", p), zap.Error(err))
	}
}

func kodeTaken() *ValidationError {
	ve := &ValidationError{}
	ve.Add("kode_inventaris", message("kode_inventaris", "unique", ""))
	return ve
}

// inventarisEvent is the message body published for every change.
type inventarisEvent struct {
	Event          string    `json:"event"`
	ID             uint      `json:"id"`
	KodeInventaris string    `json:"kode_inventaris"`
	PetugasID      uint      `json:"petugas_id"`
	At             time.Time `json:"at"`
}

func (s *InventarisService) publish(routingKey string, item *models.Inventaris) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(inventarisEvent{
		Event:          routingKey,
		ID:             item.ID,
		KodeInventaris: item.KodeInventaris,
		PetugasID:      item.PetugasID,
		At:             time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn("failed to marshal inventaris event", zap.Error(err))
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		s.log.Warn("failed to publish inventaris event", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
