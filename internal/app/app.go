package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventaris/internal/config"
	"inventaris/internal/database"
	"inventaris/internal/handlers"
	"inventaris/internal/middleware"
	"inventaris/internal/models"
	"inventaris/internal/repositories"
	"inventaris/internal/services"
	"inventaris/internal/storage"
	"inventaris/internal/views"
	"inventaris/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bodyLimit leaves room for a full-size image plus the form fields.
const bodyLimit = 8 * 1024 * 1024

// Deps are the collaborators the web application is assembled from.
type Deps struct {
	DB         *gorm.DB // nil for the in-memory driver
	Inventaris repositories.InventarisRepository
	References repositories.ReferenceRepository
	Petugas    repositories.PetugasRepository
	Files      afero.Fs
	Events     services.EventPublisher
}

// App is the assembled web application.
type App struct {
	Fiber      *fiber.App
	Auth       *services.AuthService
	Inventaris *services.InventarisService
	MQ         *rabbitmq.Client

	db      *gorm.DB
	closers []func() error
}

// OpenDeps connects the configured database, blob root and message broker.
// A broker that cannot be reached only disables change events.
func OpenDeps(cfg *config.Config, log *zap.Logger) (*Deps, *rabbitmq.Client, []func() error, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var (
		deps    Deps
		closers []func() error
	)

	switch cfg.DatabaseDriver {
	case database.DriverMemory:
		refs := repositories.NewMockReferenceRepository()
		petugas := repositories.NewMockPetugasRepository()
		deps.References = refs
		deps.Petugas = petugas
		deps.Inventaris = repositories.NewMockInventarisRepository(refs, petugas)
		seedMemory(refs)
		log.Warn("using in-memory repositories; data is lost on exit")
	default:
		db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, cfg.DatabaseDebug)
		if err != nil {
			return nil, nil, nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			closers = append(closers, sqlDB.Close)
		}
		if err := database.Migrate(db); err != nil {
			return nil, nil, closers, err
		}
		deps.DB = db
		deps.Inventaris = repositories.NewGORMInventarisRepository(db)
		deps.References = repositories.NewGORMReferenceRepository(db)
		deps.Petugas = repositories.NewGORMPetugasRepository(db)
	}

	store, err := storage.NewLocalStore(cfg.StorageRoot)
	if err != nil {
		return nil, nil, closers, err
	}
	deps.Files = store.FS()

	var mq *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mq, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, change events disabled", zap.Error(err))
		} else {
			deps.Events = mq
			closers = append(closers, mq.Close)
		}
	}

	return &deps, mq, closers, nil
}

// New builds the application from the configuration.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	deps, mq, closers, err := OpenDeps(cfg, log)
	if err != nil {
		for _, c := range closers {
			c()
		}
		return nil, err
	}

	a, err := NewWithDeps(cfg, log, deps)
	if err != nil {
		for _, c := range closers {
			c()
		}
		return nil, err
	}
	a.MQ = mq
	a.closers = closers

	if cfg.AdminUsername != "" {
		if err := a.ensureAdmin(context.Background(), deps.Petugas, cfg, log); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

// seedMemory gives the in-memory driver the same reference rows the migrate
// command seeds.
func seedMemory(refs *repositories.MockReferenceRepository) {
	for i, name := range []string{"Elektronik", "Mebel", "Alat Tulis"} {
		refs.AddJenis(models.Jenis{ID: uint(i + 1), NamaJenis: name})
	}
	for i, name := range []string{"Gudang", "Ruang Guru", "Laboratorium"} {
		refs.AddRuang(models.Ruang{ID: uint(i + 1), NamaRuang: name})
	}
}

// ensureAdmin registers the configured bootstrap petugas unless it exists.
func (a *App) ensureAdmin(ctx context.Context, repo repositories.PetugasRepository, cfg *config.Config, log *zap.Logger) error {
	_, err := repo.GetByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up admin petugas: %w", err)
	}
	if err := a.Auth.RegisterPetugas(ctx, &models.Petugas{
		Username:    cfg.AdminUsername,
		Password:    cfg.AdminPassword,
		NamaPetugas: cfg.AdminUsername,
	}); err != nil {
		return fmt.Errorf("failed to create admin petugas: %w", err)
	}
	log.Info("admin petugas created", zap.String("username", cfg.AdminUsername))
	return nil
}

// NewWithDeps wires services, handlers and routes on top of deps.
func NewWithDeps(cfg *config.Config, log *zap.Logger, deps *Deps) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	engine := views.New(cfg.StorageURL)
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	authService := services.NewAuthService(deps.Petugas, cfg.JWTSecret, log.Named("auth"))
	inventarisService := services.NewInventarisService(
		deps.Inventaris,
		deps.References,
		storage.NewStore(deps.Files),
		deps.Events,
		cfg.PageSize,
		log.Named("inventaris"),
	)

	f := fiber.New(fiber.Config{
		AppName:               "inventaris",
		Views:                 engine,
		ErrorHandler:          handlers.ErrorHandler(log),
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})
	f.Use(recover.New())
	f.Use(middleware.RequestLogger(log.Named("http")))
	if cfg.StorageURL != "" && cfg.StorageURL != "/" {
		f.Use(cfg.StorageURL, filesystem.New(filesystem.Config{
			Root:   afero.NewHttpFs(deps.Files),
			Browse: false,
			MaxAge: 3600,
		}))
	}

	sessions := session.New(session.Config{
		Expiration:     2 * time.Hour,
		KeyLookup:      "cookie:inventaris_session",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.CookieSecure,
		CookieSameSite: "Lax",
	})
	flash := handlers.NewFlasher(sessions, log)

	a := &App{
		Fiber:      f,
		Auth:       authService,
		Inventaris: inventarisService,
		db:         deps.DB,
	}

	f.Get("/health", a.handleHealth)
	f.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(handlers.ListPath, fiber.StatusFound)
	})

	handlers.NewAuthHandler(authService, cfg.CookieSecure, log.Named("auth")).RegisterRoutes(f)
	handlers.NewInventarisHandler(inventarisService, flash, log.Named("inventaris")).
		RegisterRoutes(f, middleware.AuthRequired(authService, log.Named("auth")))

	return a, nil
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	status := fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
		"rabbit": a.MQ != nil,
	}
	if a.db != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		sqlDB, err := a.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			status["status"] = "unhealthy"
			status["database"] = err.Error()
			return c.Status(fiber.StatusServiceUnavailable).JSON(status)
		}
		status["database"] = "ok"
	}
	return c.JSON(status)
}

// Close releases the database and broker connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
