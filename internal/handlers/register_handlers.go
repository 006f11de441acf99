package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/praxisledger/trustd/cmd/docs"
	portssvc "github.com/praxisledger/trustd/internal/core/ports/services"
	"github.com/praxisledger/trustd/internal/middleware"
	"github.com/praxisledger/trustd/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, services)

	// Authenticated API routes
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (not available in production)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services.User)
	registerFirmRoutes(v1, services.Firm)

	// Everything below is firm scoped; services authorize the caller's
	// membership and role on every operation.
	firmSpecific := v1.Group("/firms/:firm_id")
	registerClientRoutes(firmSpecific, services.Client)
	registerTrustAccountRoutes(firmSpecific, services.TrustAccount)
	RegisterLedgerRoutes(firmSpecific, services.Ledger, services.Reconciliation)
	registerGuidelineRoutes(firmSpecific, services.Guideline)
	registerTimeEntryRoutes(firmSpecific, services.TimeEntry, services.Guideline, services.Client)
	registerInvoiceRoutes(firmSpecific, services.Invoice)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
