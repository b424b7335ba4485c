package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/sitca-league/sitca-backend/config"
	"github.com/sitca-league/sitca-backend/internal/auth"
	"github.com/sitca-league/sitca-backend/internal/moderation"
	"github.com/sitca-league/sitca-backend/internal/player"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("failed to configure trusted proxies: %v", err)
	}
	r.MaxMultipartMemory = 10 << 20

	// Origin allow-list; requests without an Origin header (curl, probes)
	// are let through by the cors middleware itself.
	r.Use(cors.New(cors.Config{
		AllowOrigins: appConfig.App.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	// Uploaded player photos and documents
	r.Static("/uploads", appConfig.App.UploadDir)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "SITCA 2025 Backend API",
			"version": "1.0.0",
		})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	api.GET("/health", healthHandler(db, appConfig))

	auth.RegisterAuthRoutes(api, db, appConfig)
	player.RegisterPlayerRoutes(api, db, appConfig)
	moderation.RegisterModerationRoutes(api, db, appConfig)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return r
}

// @Summary      Health check
// @Description  Liveness probe that also verifies database connectivity.
// @Tags         Platform
// @Produce      json
// @Success      200   {object} map[string]string
// @Failure      500   {object} map[string]string
// @Router       /health [get]
func healthHandler(db *gorm.DB, appConfig *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var probe int
		if err := db.Raw("SELECT 1").Scan(&probe).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status": "DB NOT CONNECTED",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      "OK",
			"service":     "SITCA Backend API",
			"environment": appConfig.App.Env,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
