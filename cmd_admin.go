package main

import (
	"fmt"

	"inventaris/internal/config"
	"inventaris/internal/database"
	"inventaris/internal/models"
	"inventaris/internal/repositories"
	"inventaris/internal/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var seedReference bool

// migrateCmd creates or updates the database schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  runMigrate,
}

// petugasCmd groups staff account management
var petugasCmd = &cobra.Command{
	Use:   "petugas",
	Short: "Manage petugas accounts",
}

// petugasCreateCmd registers a new petugas
var petugasCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a petugas who can sign in",
	RunE:  runPetugasCreate,
}

var (
	petugasUsername string
	petugasName     string
	petugasPassword string
)

func init() {
	migrateCmd.Flags().BoolVar(&seedReference, "seed", false, "Insert starter jenis and ruang rows when empty")

	petugasCreateCmd.Flags().StringVar(&petugasUsername, "username", "", "Login name")
	petugasCreateCmd.Flags().StringVar(&petugasName, "name", "", "Display name")
	petugasCreateCmd.Flags().StringVar(&petugasPassword, "password", "", "Password, at least 6 characters")
	_ = petugasCreateCmd.MarkFlagRequired("username")
	_ = petugasCreateCmd.MarkFlagRequired("name")
	_ = petugasCreateCmd.MarkFlagRequired("password")
	petugasCmd.AddCommand(petugasCreateCmd)
}

// openDatabase opens and migrates the configured SQL database.
func openDatabase(cfg *config.Config) (*gorm.DB, func(), error) {
	if cfg.DatabaseDriver == database.DriverMemory {
		return nil, nil, fmt.Errorf("the %s driver keeps no data between runs", database.DriverMemory)
	}
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, cfg.DatabaseDebug)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if err := database.Migrate(db); err != nil {
		closeDB()
		return nil, nil, err
	}
	return db, closeDB, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, closeDB, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDB()
	log.Info("schema migrated", zap.String("driver", cfg.DatabaseDriver))

	if seedReference {
		if err := database.SeedReference(cmd.Context(), db); err != nil {
			return err
		}
		log.Info("reference data seeded")
	}
	return nil
}

func runPetugasCreate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, closeDB, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	authService := services.NewAuthService(repositories.NewGORMPetugasRepository(db), cfg.JWTSecret, log)
	petugas := &models.Petugas{
		Username:    petugasUsername,
		Password:    petugasPassword,
		NamaPetugas: petugasName,
	}
	if err := authService.RegisterPetugas(cmd.Context(), petugas); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "petugas %s created (id %d)\n", petugas.Username, petugas.ID)
	return nil
}
