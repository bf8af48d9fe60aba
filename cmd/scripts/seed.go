package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/timaocord/wallet-backend/internal/config"
	"github.com/timaocord/wallet-backend/internal/repositories"
	mongorepo "github.com/timaocord/wallet-backend/internal/repositories/mongodb"
	"github.com/timaocord/wallet-backend/internal/services"
	"github.com/timaocord/wallet-backend/internal/utils"
	"github.com/timaocord/wallet-backend/pkg/footballapi"
	"github.com/timaocord/wallet-backend/pkg/mongodb"
)

// Seeds the database for a fresh deployment: the first admin account, the
// default level ladder, and optionally fixtures from the provider or a CSV.
func main() {
	adminEmail := flag.String("admin-email", "", "create an admin account with this email")
	adminName := flag.String("admin-name", "Administrador", "name for the admin account")
	adminPassword := flag.String("admin-password", "", "password for the admin account")
	fixturesCSV := flag.String("fixtures-csv", "", "import fixtures from this CSV file")
	syncFixtures := flag.Bool("sync-fixtures", false, "fetch today's fixtures from the football API")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	if *adminEmail != "" {
		if *adminPassword == "" {
			log.Fatal("-admin-password is required with -admin-email")
		}
		var adminRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)
		authService := services.NewAuthService(adminRepo, cfg)
		admin, err := authService.CreateAdmin(ctx, *adminName, *adminEmail, *adminPassword, "admin")
		if err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		log.Printf("Admin account created: %s", admin.Email)
	}

	levelRepo := mongorepo.NewLevelConfigRepository(db)
	userRepo := mongorepo.NewUserRepository(db)
	levelService := services.NewLevelService(levelRepo, userRepo)
	levels, err := levelService.GetLevelConfig(ctx)
	if err != nil {
		log.Fatalf("Failed to seed level config: %v", err)
	}
	log.Printf("Level ladder ready with %d levels", len(levels))

	matchRepo := mongorepo.NewMatchRepository(db)

	if *fixturesCSV != "" {
		matches, err := utils.ParseFixturesCSV(*fixturesCSV)
		if err != nil {
			log.Fatalf("Failed to parse fixtures CSV: %v", err)
		}
		if err := matchRepo.Upsert(ctx, matches); err != nil {
			log.Fatalf("Failed to import fixtures: %v", err)
		}
		log.Printf("Imported %d fixtures from %s", len(matches), *fixturesCSV)
	}

	if *syncFixtures {
		api := footballapi.NewClient(cfg.Football.BaseURL, cfg.Football.APIKey, cfg.Football.Mock)
		matches, err := api.GetFixtures(ctx, time.Now().UTC())
		if err != nil {
			log.Fatalf("Failed to fetch fixtures: %v", err)
		}
		if err := matchRepo.Upsert(ctx, matches); err != nil {
			log.Fatalf("Failed to store fixtures: %v", err)
		}
		log.Printf("Synced %d fixtures from the football API", len(matches))
	}

	log.Println("Seed completed")
}
