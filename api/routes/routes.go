package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/timaocord/wallet-backend/internal/config"
	"github.com/timaocord/wallet-backend/internal/handlers"
	"github.com/timaocord/wallet-backend/internal/middleware"
)

// HandlerDependencies groups the handlers wired in main
type HandlerDependencies struct {
	AuthHandler         *handlers.AuthHandler
	WalletHandler       *handlers.WalletHandler
	RewardHandler       *handlers.RewardHandler
	BetHandler          *handlers.BetHandler
	StoreHandler        *handlers.StoreHandler
	NotificationHandler *handlers.NotificationHandler
	LevelHandler        *handlers.LevelHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		public.POST("/auth/login", deps.AuthHandler.Login)
	}

	// Authenticated routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		wallet := protected.Group("/wallet")
		{
			wallet.GET("", deps.WalletHandler.GetWallet)
			wallet.GET("/ranking", deps.WalletHandler.GetRanking)
		}

		rewards := protected.Group("/rewards")
		{
			rewards.POST("/redeem", deps.RewardHandler.Redeem)
			rewards.POST("/daily-claim", deps.RewardHandler.ClaimDaily)
		}

		bets := protected.Group("/bets")
		{
			bets.POST("", deps.BetHandler.PlaceBet)
			bets.GET("", deps.BetHandler.GetMyBets)
		}

		store := protected.Group("/store")
		{
			store.GET("/items", deps.StoreHandler.ListItems)
			store.POST("/purchase", deps.StoreHandler.Purchase)
			store.GET("/inventory", deps.StoreHandler.GetInventory)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", deps.NotificationHandler.GetNotifications)
			notifications.POST("/read-all", deps.NotificationHandler.MarkAllRead)
		}

		levels := protected.Group("/levels")
		{
			levels.GET("", deps.LevelHandler.GetLevelConfig)
			levels.GET("/me", deps.LevelHandler.GetMyLevel)
		}
	}

	// Admin routes
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg), middleware.RequireAdmin())
	{
		admin.POST("/auth/admins", deps.AuthHandler.CreateAdmin)

		codes := admin.Group("/codes")
		{
			codes.POST("", deps.RewardHandler.CreateCode)
			codes.GET("", deps.RewardHandler.ListCodes)
			codes.POST("/:id/revoke", deps.RewardHandler.RevokeCode)
		}

		admin.GET("/rewards/pending", deps.RewardHandler.PendingRewards)
		admin.POST("/rewards/pending/:id/process", deps.RewardHandler.MarkRewardProcessed)

		admin.POST("/bets/:id/settle", deps.BetHandler.SettleBet)

		admin.PUT("/levels", deps.LevelHandler.UpdateLevelConfig)
	}

	return router
}
