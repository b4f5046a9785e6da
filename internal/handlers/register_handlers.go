package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_tracker/cmd/docs"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	registerValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, rateLimiter)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	// Rate limiting runs after auth so it can key on the user.
	v1 := r.Group("/api/v1",
		middleware.RequestTimeout(cfg.RequestTimeout),
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTAudience),
	)
	if rateLimiter != nil {
		v1.Use(middleware.RateLimit(rateLimiter))
	}

	registerMeRoutes(v1)
	registerDashboardRoutes(v1, services.Dashboard)
	registerAccountRoutes(v1, services.Account, services.Transaction)
	registerTransactionRoutes(v1, services.Transaction)
	registerCategoryRoutes(v1, services.Category)
	registerReportRoutes(v1, services.Report)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		slog.Error("Failed to register notblank validator", slog.String("error", err.Error()))
	}
}
