package main

import (
	"context"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/league-hub/internal/config"
	"github.com/mauv0809/league-hub/internal/database"
	"github.com/mauv0809/league-hub/internal/identity"
	"github.com/mauv0809/league-hub/internal/league"
)

// seederConfig is the subset of the server configuration the seeder needs.
type seederConfig struct {
	DBName        string `env:"DB_NAME" envDefault:"league.db"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"./migrations"`
	SeedFile      string `env:"SEED_FILE" envDefault:"seed.yaml"`
	Turso         config.TursoConfig
}

func main() {
	log.Info("Starting database seeder...")
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	var cfg seederConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Invalid configuration: %s", err)
	}
	if len(os.Args) > 1 {
		cfg.SeedFile = os.Args[1]
	}

	f, err := os.Open(cfg.SeedFile)
	if err != nil {
		log.Fatalf("Failed to open seed file: %s", err)
	}
	defer f.Close()
	seedFile, err := parseSeed(f)
	if err != nil {
		log.Fatalf("%s", err)
	}

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		dbTeardown()
		db.Close()
	}()

	res, err := seed(context.Background(), seedFile, league.New(db, nil), identity.NewProfileStore(db, nil))
	if err != nil {
		log.Error("Seeding failed", "error", err)
		return
	}
	log.Info("Seeding finished", "leagues", res.Leagues, "teams", res.Teams, "matches", res.Matches, "admins", res.Admins)
}
