package main

import (
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vineetk-singh/auctionapi/internal/models"
	"github.com/vineetk-singh/auctionapi/pkg/config"
	"github.com/vineetk-singh/auctionapi/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(db); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Seed data inserted successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	return db.AutoMigrate(
		&models.Tournament{},
		&models.Team{},
		&models.Player{},
		&models.User{},
		&models.SetupStatus{},
	)
}

func dropTables(db *database.DB) error {
	return db.Migrator().DropTable(
		&models.SetupStatus{},
		&models.User{},
		&models.Player{},
		&models.Team{},
		&models.Tournament{},
	)
}

func seedData(db *database.DB) error {
	tournament := models.Tournament{
		Name:            "IPL 2025",
		NumberOfTeams:   8,
		PlayersEachTeam: 11,
		AmountPerTeam:   1000,
	}
	if err := db.FirstOrCreate(&tournament, models.Tournament{Name: tournament.Name}).Error; err != nil {
		return err
	}

	if _, err := models.GetUserByUsername(db, "admin"); err != nil {
		if _, err := models.CreateUser(db, "admin", "admin@123", models.RoleAdmin); err != nil {
			return err
		}
	}

	return nil
}
