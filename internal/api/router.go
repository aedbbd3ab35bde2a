package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/vineetk-singh/auctionapi/internal/api/handlers"
	"github.com/vineetk-singh/auctionapi/internal/api/middleware"
	"github.com/vineetk-singh/auctionapi/internal/models"
	"github.com/vineetk-singh/auctionapi/internal/services"
	"github.com/vineetk-singh/auctionapi/pkg/config"
	"github.com/vineetk-singh/auctionapi/pkg/database"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, db *database.DB, cache *services.CacheService, cfg *config.Config, logger *logrus.Logger) {
	// Initialize services
	playerImporter := services.NewPlayerImporter(db, logger)
	teamImporter := services.NewTeamImporter(db, logger)
	setupService := services.NewSetupService(db, logger)
	loginLimiter := services.NewLoginRateLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst)

	// Initialize handlers
	tournamentHandler := handlers.NewTournamentHandler(db)
	teamHandler := handlers.NewTeamHandler(db, cache, teamImporter, cfg)
	playerHandler := handlers.NewPlayerHandler(db, cache, playerImporter, cfg)
	userHandler := handlers.NewUserHandler(db, cfg, loginLimiter)
	setupHandler := handlers.NewSetupHandler(setupService)

	// Tournament endpoints
	group.GET("/tournaments", tournamentHandler.ListTournaments)
	group.GET("/tournaments/:name", tournamentHandler.GetTournament)
	group.POST("/tournaments", tournamentHandler.CreateTournament)
	group.PUT("/tournaments/:name", tournamentHandler.UpdateTournament)
	group.DELETE("/tournaments/:name", tournamentHandler.DeleteTournament)

	// Team endpoints, Admin only
	teams := group.Group("/teams")
	teams.Use(middleware.AuthRequired(cfg.JWTSecret), middleware.RequireRoles(models.RoleAdmin))
	{
		teams.POST("", teamHandler.CreateTeam)
		teams.GET("", teamHandler.ListTeams)
		teams.GET("/:name", teamHandler.GetTeam)
		teams.POST("/bulk", teamHandler.BulkUploadTeams)
	}

	// Player endpoints
	group.POST("/players", playerHandler.CreatePlayer)
	group.GET("/players", playerHandler.ListPlayers)
	group.GET("/players/:name", playerHandler.GetPlayer)
	group.PUT("/players/:name", playerHandler.UpdatePlayer)
	group.DELETE("/players/:name", playerHandler.DeletePlayer)
	group.POST("/players/bulk-upload", playerHandler.BulkUploadPlayers)

	// User endpoints
	group.POST("/users/register", userHandler.Register)
	group.POST("/users/bulk-register", userHandler.BulkRegister)
	group.POST("/users/login", userHandler.Login)
	group.POST("/users/refresh-token", userHandler.RefreshToken)
	group.GET("/users/authStatus", userHandler.AuthStatus)

	// Setup status endpoint
	group.GET("/setup/status", setupHandler.GetSetupStatus)
}
