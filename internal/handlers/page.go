package handlers

import (
	"errors"
	"strings"

	"inventaris/internal/middleware"
	"inventaris/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

// PageData is the base data passed to all templates.
type PageData struct {
	Title string
	User  *services.Identity
	Flash string
}

// Flasher keeps one-shot status messages in the session between a redirect
// and the next page.
type Flasher struct {
	store *session.Store
	log   *zap.Logger
}

const flashKey = "flash"

// NewFlasher creates a Flasher backed by store.
func NewFlasher(store *session.Store, log *zap.Logger) *Flasher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Flasher{store: store, log: log}
}

// Set records msg for the next rendered page.
func (f *Flasher) Set(c *fiber.Ctx, msg string) error {
	sess, err := f.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(flashKey, msg)
	return sess.Save()
}

// Take returns the pending message, if any, and clears it.
func (f *Flasher) Take(c *fiber.Ctx) string {
	sess, err := f.store.Get(c)
	if err != nil {
		f.log.Warn("failed to load session", zap.Error(err))
		return ""
	}
	msg, _ := sess.Get(flashKey).(string)
	if msg == "" {
		return ""
	}
	sess.Delete(flashKey)
	if err := sess.Save(); err != nil {
		f.log.Warn("failed to save session", zap.Error(err))
	}
	return msg
}

// ErrorPage is rendered for every failed request that is not a validation
// failure.
type ErrorPage struct {
	PageData
	Status  int
	Message string
}

// ErrorHandler maps errors returned by handlers to status codes and renders
// the error page. Unknown ids become 404; everything unexpected is a 500.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Terjadi kesalahan pada server."

		var fe *fiber.Error
		switch {
		case errors.Is(err, services.ErrNotFound):
			code = fiber.StatusNotFound
			message = "Data tidak ditemukan."
		case errors.As(err, &fe):
			code = fe.Code
			message = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		c.Status(code)
		if strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON) {
			return c.JSON(fiber.Map{"message": message})
		}
		rerr := c.Render("error", ErrorPage{
			PageData: PageData{Title: message, User: middleware.CurrentIdentity(c)},
			Status:   code,
			Message:  message,
		})
		if rerr != nil {
			log.Error("failed to render error page", zap.Error(rerr))
			return c.SendString(message)
		}
		return nil
	}
}
