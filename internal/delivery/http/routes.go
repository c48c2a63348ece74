package http

import (
	"time"

	"github.com/jipbab-note/backend/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the gin router.
func SetupRouter(cfg *config.Config, handler *Handler, limiter *RateLimiter, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(RequestLogger(logger))
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(limiter.Middleware())
	{
		v1.GET("/ingredients", handler.ListIngredientSuggestions)
		v1.GET("/products", handler.LookupProduct)

		recipes := v1.Group("/recipes")
		{
			recipes.GET("", handler.ListRecipes)
			recipes.GET("/:id", handler.GetRecipeDetail)
			recipes.POST("/match", handler.MatchRecipe)
		}

		favorites := v1.Group("/favorites")
		{
			favorites.GET("", handler.ListFavorites)
			favorites.PUT("", handler.SaveFavorites)
		}

		community := v1.Group("/community")
		{
			community.GET("/recipes", handler.ListCommunityRecipes)
			community.POST("/recipes", handler.CreateCommunityRecipe)
		}
	}

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Device-ID", "X-Request-ID"},
		ExposeHeaders:    []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           time.Hour,
	}

	for _, origin := range allowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowOrigins = nil
			return cfg
		}
	}
	cfg.AllowOrigins = allowedOrigins
	return cfg
}
