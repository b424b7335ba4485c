package moderation

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sitca-league/sitca-backend/config"
	mw "github.com/sitca-league/sitca-backend/internal/middleware"
	"github.com/sitca-league/sitca-backend/internal/player"
	"github.com/sitca-league/sitca-backend/pkg/rmiddleware"
)

func RegisterModerationRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	playerRepo := player.NewPlayerRepository(db)
	moderationController := NewModerationController(playerRepo, appConfig)

	admin := router.Group("/admin")
	admin.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	admin.Use(rmiddleware.AdminMiddleware())
	{
		admin.GET("/players/pending", moderationController.ListPending)
		admin.GET("/players/all", moderationController.ListAll)
		admin.PATCH("/player/:id/status", moderationController.SetStatus)
		admin.POST("/players/bulk-status", moderationController.BulkSetStatus)
	}
}
