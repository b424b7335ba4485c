package player

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sitca-league/sitca-backend/config"
	"github.com/sitca-league/sitca-backend/pkg/uploads"
)

func RegisterPlayerRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	playerRepo := NewPlayerRepository(db)
	store := uploads.NewStore(appConfig.App.UploadDir, appConfig.Upload.MaxFileBytes)
	playerController := NewPlayerController(playerRepo, store, appConfig)

	playerPublic := router.Group("/player")
	{
		playerPublic.POST("/register-public", playerController.RegisterPublic)
	}
}
