package handlers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"inventaris/internal/middleware"
	"inventaris/internal/models"
	"inventaris/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ListPath is where the listing lives and where forms return to.
const ListPath = "/inventaris"

// Flash messages shown on the listing after a successful write.
const (
	FlashStored  = "success store"
	FlashUpdated = "success update"
	FlashDeleted = "success delete"
)

// InventarisHandler handles HTTP requests for inventaris.
type InventarisHandler struct {
	service *services.InventarisService
	flash   *Flasher
	log     *zap.Logger
}

// NewInventarisHandler creates a new InventarisHandler.
func NewInventarisHandler(service *services.InventarisService, flash *Flasher, log *zap.Logger) *InventarisHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InventarisHandler{
		service: service,
		flash:   flash,
		log:     log,
	}
}

// RegisterRoutes registers the inventaris routes behind mw. HTML forms cannot
// send PUT or DELETE, so POST /inventaris/:id dispatches on the _method field.
func (h *InventarisHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	r := router.Group(ListPath, mw...)
	r.Get("/", h.HandleIndex)
	r.Get("/create", h.HandleCreate)
	r.Post("/", h.HandleStore)
	r.Get("/:id/edit", h.HandleEdit)
	r.Get("/:id", h.HandleShow)
	r.Put("/:id", h.HandleUpdate)
	r.Patch("/:id", h.HandleUpdate)
	r.Post("/:id", h.HandleMethodOverride)
	r.Delete("/:id", h.HandleDestroy)
}

type indexPage struct {
	PageData
	Page *models.InventarisPage
}

type formPage struct {
	PageData
	ID      uint
	Old     services.InventarisInput
	Errors  map[string]string
	Options *models.FormOptions
	Image   *string
}

func (h *InventarisHandler) pageData(c *fiber.Ctx, title string) PageData {
	return PageData{
		Title: title,
		User:  middleware.CurrentIdentity(c),
		Flash: h.flash.Take(c),
	}
}

// HandleIndex renders one page of the listing.
func (h *InventarisHandler) HandleIndex(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), c.Query("search"), c.QueryInt("page", 1))
	if err != nil {
		return err
	}
	page.Path = ListPath

	return c.Render("inventaris/index", indexPage{
		PageData: h.pageData(c, "Data Inventaris"),
		Page:     page,
	})
}

// HandleCreate renders the empty create form.
func (h *InventarisHandler) HandleCreate(c *fiber.Ctx) error {
	opts, err := h.service.CreateFormOptions(c.UserContext())
	if err != nil {
		return err
	}
	return c.Render("inventaris/create", formPage{
		PageData: h.pageData(c, "Tambah Inventaris"),
		Options:  opts,
	})
}

// HandleStore creates an inventaris from the submitted form.
func (h *InventarisHandler) HandleStore(c *fiber.Ctx) error {
	var in services.InventarisInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	img, err := readImage(c)
	if err != nil {
		return err
	}

	_, err = h.service.Create(c.UserContext(), middleware.CurrentPetugasID(c), in, img)
	if ve, ok := services.IsValidation(err); ok {
		opts, oerr := h.service.CreateFormOptions(c.UserContext())
		if oerr != nil {
			return oerr
		}
		return c.Status(fiber.StatusUnprocessableEntity).Render("inventaris/create", formPage{
			PageData: h.pageData(c, "Tambah Inventaris"),
			Old:      in,
			Errors:   ve.Fields,
			Options:  opts,
		})
	}
	if err != nil {
		return err
	}

	if err := h.flash.Set(c, FlashStored); err != nil {
		h.log.Warn("failed to set flash", zap.Error(err))
	}
	return c.Redirect(ListPath, fiber.StatusSeeOther)
}

// HandleEdit renders the edit form filled with the stored values.
func (h *InventarisHandler) HandleEdit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	form, err := h.service.EditFormOptions(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.Render("inventaris/edit", formPage{
		PageData: h.pageData(c, "Edit Inventaris"),
		ID:       id,
		Old:      inputFrom(form.Inventaris),
		Options:  form.Options,
		Image:    form.Inventaris.Image,
	})
}

// HandleUpdate overwrites an inventaris from the submitted form.
func (h *InventarisHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var in services.InventarisInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	img, err := readImage(c)
	if err != nil {
		return err
	}

	_, err = h.service.Update(c.UserContext(), id, in, img)
	if ve, ok := services.IsValidation(err); ok {
		form, ferr := h.service.EditFormOptions(c.UserContext(), id)
		if ferr != nil {
			return ferr
		}
		return c.Status(fiber.StatusUnprocessableEntity).Render("inventaris/edit", formPage{
			PageData: h.pageData(c, "Edit Inventaris"),
			ID:       id,
			Old:      in,
			Errors:   ve.Fields,
			Options:  form.Options,
			Image:    form.Inventaris.Image,
		})
	}
	if err != nil {
		return err
	}

	if err := h.flash.Set(c, FlashUpdated); err != nil {
		h.log.Warn("failed to set flash", zap.Error(err))
	}
	return c.Redirect(ListPath, fiber.StatusSeeOther)
}

// HandleDestroy deletes an inventaris and returns to the previous page.
func (h *InventarisHandler) HandleDestroy(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}

	if err := h.flash.Set(c, FlashDeleted); err != nil {
		h.log.Warn("failed to set flash", zap.Error(err))
	}
	return c.RedirectBack(ListPath, fiber.StatusSeeOther)
}

// HandleShow answers 404; there is no detail page.
func (h *InventarisHandler) HandleShow(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	return h.service.Show(c.UserContext(), id)
}

// HandleMethodOverride routes a form POST to update or destroy.
func (h *InventarisHandler) HandleMethodOverride(c *fiber.Ctx) error {
	switch strings.ToUpper(c.FormValue("_method")) {
	case fiber.MethodPut, fiber.MethodPatch:
		return h.HandleUpdate(c)
	case fiber.MethodDelete:
		return h.HandleDestroy(c)
	default:
		return fiber.ErrMethodNotAllowed
	}
}

// parseID reads the :id parameter. Ids that are not positive integers are
// reported as not found.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("inventaris %q: %w", c.Params("id"), services.ErrNotFound)
	}
	return uint(id), nil
}

// readImage returns the uploaded image, or nil when the request has none.
func readImage(c *fiber.Ctx) (*services.ImageUpload, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid multipart form")
	}
	files := form.File["image"]
	if len(files) == 0 || (files[0].Filename == "" && files[0].Size == 0) {
		return nil, nil
	}

	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	// One byte past the limit is enough to reject an oversized file.
	content, err := io.ReadAll(io.LimitReader(f, services.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	return &services.ImageUpload{Filename: fh.Filename, Size: fh.Size, Content: content}, nil
}

// inputFrom fills the form with an item's stored values.
func inputFrom(item *models.Inventaris) services.InventarisInput {
	return services.InventarisInput{
		KodeInventaris:  item.KodeInventaris,
		NamaInventaris:  item.NamaInventaris,
		Keterangan:      item.KeteranganValue(),
		JenisID:         strconv.FormatUint(uint64(item.JenisID), 10),
		RuangID:         strconv.FormatUint(uint64(item.RuangID), 10),
		Jumlah:          strconv.FormatFloat(item.Jumlah, 'f', -1, 64),
		Kondisi:         item.Kondisi,
		TanggalRegister: item.TanggalRegister,
	}
}
