package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sitca-league/sitca-backend/config"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	authRepo := NewAuthRepository(db)
	authController := NewAuthController(authRepo, appConfig)

	authPublic := router.Group("/auth")
	{
		authPublic.POST("/login", authController.Login)
	}
}
