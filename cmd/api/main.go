package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/elandref93/WiseBond-sub004/internal/config"
	"github.com/elandref93/WiseBond-sub004/internal/handler"
	"github.com/elandref93/WiseBond-sub004/internal/mail"
	"github.com/elandref93/WiseBond-sub004/internal/middleware"
	"github.com/elandref93/WiseBond-sub004/internal/report"
	"github.com/elandref93/WiseBond-sub004/internal/repository/postgres"
	otpredis "github.com/elandref93/WiseBond-sub004/internal/repository/redis"
	"github.com/elandref93/WiseBond-sub004/internal/repository/storage"
	"github.com/elandref93/WiseBond-sub004/internal/service"
	"github.com/elandref93/WiseBond-sub004/internal/websocket"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Connect to Redis for the OTP store
	otpStore := otpredis.NewOTPStore(cfg.Redis)
	if err := otpStore.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping Redis")
	}
	defer otpStore.Close()
	log.Info().Msg("Connected to Redis")

	// Object storage for documents and reports
	fileRepo, err := storage.NewS3FileRepository(context.Background(), cfg.S3)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}

	// Outbound email and PDF rendering
	mailSender := mail.NewMailgunSender(cfg.Mailgun)
	renderer := report.NewChromiumRenderer(cfg.PDF.ChromiumPath)

	// WebSocket hub for agent dashboards
	hub := websocket.NewHub()
	publisher := websocket.NewHubPublisher(hub)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	calcRepo := postgres.NewSavedCalculationRepository(pool)
	enquiryRepo := postgres.NewEnquiryRepository(pool)
	appRepo := postgres.NewApplicationRepository(pool)
	docRepo := postgres.NewDocumentRepository(pool)

	// Initialize services
	authService := service.NewAuthService(userRepo)
	profileService := service.NewProfileService(userRepo)
	calculationService := service.NewCalculationService(calcRepo)
	otpService := service.NewOTPService(otpStore, userRepo, mailSender)
	enquiryService := service.NewEnquiryService(enquiryRepo, mailSender, cfg.Mailgun.NotifyAddress)
	applicationService := service.NewApplicationService(appRepo, publisher)
	documentService := service.NewDocumentService(docRepo, fileRepo, publisher)
	reportService := service.NewReportService(renderer, fileRepo, mailSender, userRepo)

	// Initialize auth middleware and the WebSocket token validator
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, authService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}
	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, authService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create WebSocket token validator")
	}

	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// Initialize handlers
	calculatorHandler := handler.NewCalculatorHandler()
	calculationHandler := handler.NewCalculationHandler(calculationService)
	reportHandler := handler.NewReportHandler(reportService)
	profileHandler := handler.NewProfileHandler(authService, profileService)
	otpHandler := handler.NewOTPHandler(otpService)
	documentHandler := handler.NewDocumentHandler(documentService, applicationService)
	enquiryHandler := handler.NewEnquiryHandler(enquiryService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	wsHandler := handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter,
		calculatorHandler, calculationHandler, reportHandler, profileHandler,
		otpHandler, documentHandler, enquiryHandler, applicationHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
