package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rafabene/consulta-backend/docs"
	httphandlers "github.com/rafabene/consulta-backend/internal/handlers/http"
	"github.com/rafabene/consulta-backend/internal/handlers/middleware"
	"github.com/rafabene/consulta-backend/internal/infrastructure/cache"
	"github.com/rafabene/consulta-backend/internal/infrastructure/config"
	"github.com/rafabene/consulta-backend/internal/infrastructure/i18n"
	"github.com/rafabene/consulta-backend/internal/infrastructure/logging"
	"github.com/rafabene/consulta-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/consulta-backend/internal/services"
)

//	@title			Consulta API
//	@version		1.0
//	@description	API do fórum de consultas e conselhos
//	@BasePath		/api/v1

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting consulta backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		log.Fatal(err)
	}

	// Redis é opcional: sem endereço, o cache de tags fica desabilitado
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		log.Fatal(err)
	}
	if redisClient == nil {
		logger.Info("redis not configured, tag cache disabled")
	}

	// Inicializar i18n (locales embarcados)
	i18nService, err := i18n.NewService("en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Inicializar repositories
	consultationRepo := postgres.NewConsultationRepository(db)
	adviceRepo := postgres.NewAdviceRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	identityRepo := postgres.NewIdentityMappingRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	tagCache := cache.NewTagCache(redisClient, logger)
	consultationService := services.NewConsultationService(consultationRepo, uow, logger)
	adviceService := services.NewAdviceService(adviceRepo, consultationRepo, logger)
	tagService := services.NewTagService(tagRepo, tagCache, logger)

	// Inicializar handlers
	consultationHandler := httphandlers.NewConsultationHandler(consultationService, logger)
	adviceHandler := httphandlers.NewAdviceHandler(adviceService, logger)
	tagHandler := httphandlers.NewTagHandler(tagService, logger)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware i18n
	i18nMiddleware := middleware.NewI18nMiddleware(i18nService)
	router.Use(i18nMiddleware.DetectLanguage())

	// Middleware CORS
	corsConfig := cors.DefaultConfig()
	if cfg.CORS.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.CORS.AllowedOrigins, ",")
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Métricas Prometheus
	router.Use(middleware.Metrics())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes: toda a API exige identidade resolvida
	authMiddleware := middleware.NewAuthMiddleware(identityRepo, cfg.Auth.JWTSecret, logger)

	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireUser())
	{
		consultations := v1.Group("/consultations")
		{
			consultations.GET("", consultationHandler.ListConsultations)
			consultations.POST("", consultationHandler.CreateConsultation)
			consultations.GET("/:id", consultationHandler.GetConsultation)
			consultations.PUT("/:id", consultationHandler.UpdateConsultation)
			consultations.POST("/:id/advice", adviceHandler.CreateAdvice)
			consultations.PUT("/:id/advice/draft", adviceHandler.UpdateDraftAdvice)
		}

		v1.GET("/tags", tagHandler.ListTags)
	}

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("failed to close redis client", "error", err)
		}
	}

	logger.Info("server exited")
}
