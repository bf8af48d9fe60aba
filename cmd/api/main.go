package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/timaocord/wallet-backend/api/routes"
	"github.com/timaocord/wallet-backend/internal/config"
	"github.com/timaocord/wallet-backend/internal/handlers"
	"github.com/timaocord/wallet-backend/internal/repositories"
	mongorepo "github.com/timaocord/wallet-backend/internal/repositories/mongodb"
	"github.com/timaocord/wallet-backend/internal/services"
	"github.com/timaocord/wallet-backend/pkg/discord"
	"github.com/timaocord/wallet-backend/pkg/mongodb"
)

func main() {
	// Load .env if present; real deployments configure via the environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndex()
	if err := mongodb.EnsureIndexes(indexCtx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize repositories
	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)
	var walletRepo repositories.WalletRepository = mongorepo.NewWalletRepository(db)
	var promoRepo repositories.PromoCodeRepository = mongorepo.NewPromoCodeRepository(db)
	var notificationRepo repositories.NotificationRepository = mongorepo.NewNotificationRepository(db)
	var pendingRepo repositories.PendingRewardRepository = mongorepo.NewPendingRewardRepository(db)
	var betRepo repositories.BetRepository = mongorepo.NewBetRepository(db)
	var statsRepo repositories.UserStatsRepository = mongorepo.NewUserStatsRepository(db)
	var matchRepo repositories.MatchRepository = mongorepo.NewMatchRepository(db)
	var storeRepo repositories.StoreRepository = mongorepo.NewStoreRepository(db)
	var levelRepo repositories.LevelConfigRepository = mongorepo.NewLevelConfigRepository(db)
	var adminRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)

	var announcer discord.Announcer = discord.NewMockAnnouncer()
	if cfg.Discord.WebhookURL != "" {
		announcer = discord.NewWebhookClient(cfg.Discord.WebhookURL, cfg.Discord.WebhookUsername)
	}

	// Initialize services; the mongo client doubles as the transaction runner
	rewardService := services.NewRewardService(mongoClient, promoRepo, walletRepo, userRepo, pendingRepo, notificationRepo, cfg.Rewards.DailyAmount)
	walletService := services.NewWalletService(walletRepo, cfg.Rewards.RankingSize)
	betService := services.NewBetService(mongoClient, betRepo, walletRepo, statsRepo, matchRepo, notificationRepo, announcer)
	storeService := services.NewStoreService(mongoClient, storeRepo, walletRepo, userRepo, cfg.Rewards.VipDiscount)
	levelService := services.NewLevelService(levelRepo, userRepo)
	notificationService := services.NewNotificationService(notificationRepo, cfg.Rewards.NotificationLimit)
	authService := services.NewAuthService(adminRepo, cfg)

	// Initialize handlers
	deps := routes.HandlerDependencies{
		AuthHandler:         handlers.NewAuthHandler(authService),
		WalletHandler:       handlers.NewWalletHandler(walletService),
		RewardHandler:       handlers.NewRewardHandler(rewardService),
		BetHandler:          handlers.NewBetHandler(betService),
		StoreHandler:        handlers.NewStoreHandler(storeService),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
		LevelHandler:        handlers.NewLevelHandler(levelService),
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
