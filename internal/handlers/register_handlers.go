package handlers

import (
	"github.com/SscSPs/purchase_converter_app/cmd/docs"
	portssvc "github.com/SscSPs/purchase_converter_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_converter_app/internal/middleware"
	"github.com/SscSPs/purchase_converter_app/internal/platform/config"
	"github.com/SscSPs/purchase_converter_app/internal/platform/keys"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	keyProvider *keys.Provider,
	keyFunc jwt.Keyfunc,
) {
	// Health check and discovery endpoints are exempt from authentication
	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerTokenRoutes(r, services.Token)
	registerJWKSRoutes(r, keyProvider)

	setupAPIRoutes(r, services, keyFunc)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the protected /api group. Every route under it
// requires a valid token; scope requirements are applied per route.
func setupAPIRoutes(r *gin.Engine, services *portssvc.ServiceContainer, keyFunc jwt.Keyfunc) {
	api := r.Group("/api", middleware.AuthMiddleware(keyFunc))

	registerPurchaseRoutes(api, services.Purchase)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
