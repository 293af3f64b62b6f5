package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "ispcrm/docs"
	"ispcrm/internal/config"
	"ispcrm/internal/db"
	"ispcrm/internal/handlers"
	"ispcrm/internal/middleware"
	"ispcrm/internal/repositories"
	"ispcrm/internal/routes"
	"ispcrm/internal/services"
)

func Run() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	setupLogger(cfg)

	// === DB ===
	conn, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	conn.SetMaxOpenConns(20)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	if err := conn.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(conn)
	leadRepo := repositories.NewLeadRepository(conn)
	productRepo := repositories.NewProductRepository(conn)
	projectRepo := repositories.NewProjectRepository(conn)
	customerRepo := repositories.NewCustomerRepository(conn)
	reportRepo := repositories.NewReportRepository(conn)

	// === Services ===
	authService := services.NewAuthService(
		[]byte(cfg.Auth.JWTSecret),
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)

	var mail services.EmailSender
	if cfg.Email.SMTPHost != "" {
		mail = services.NewEmailSender(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	}

	var bot *tgbotapi.BotAPI
	if cfg.Telegram.BotToken != "" {
		bot, err = tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
		if err != nil {
			log.Warn().Err(err).Msg("telegram bot unavailable, notifications disabled")
			bot = nil
		}
	}
	notifier := services.NewNotifier(mail, userRepo, bot, cfg.Telegram.ManagerChatID)

	userService := services.NewUserService(userRepo, authService, mail)
	leadService := services.NewLeadService(leadRepo)
	productService := services.NewProductService(productRepo)
	projectService := services.NewProjectService(projectRepo, leadRepo, productRepo, notifier)
	customerService := services.NewCustomerService(customerRepo, productRepo)
	reportService := services.NewReportService(reportRepo)

	// === Gin ===
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(corsMiddleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, routes.Handlers{
		Auth:     handlers.NewAuthHandler(userService),
		Lead:     handlers.NewLeadHandler(leadService),
		Product:  handlers.NewProductHandler(productService),
		Project:  handlers.NewProjectHandler(projectService),
		Customer: handlers.NewCustomerHandler(customerService),
		Report:   handlers.NewReportHandler(reportService),
		Health:   handlers.NewHealthHandler(conn, cfg.Server.Env),
	}, middleware.Auth([]byte(cfg.Auth.JWTSecret), userRepo))

	// === Run ===
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Server.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
