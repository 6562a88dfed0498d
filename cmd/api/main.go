package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"

	"github.com/yomiyu15/Workingspacebackend/internal/config"
	"github.com/yomiyu15/Workingspacebackend/internal/database"
	"github.com/yomiyu15/Workingspacebackend/internal/middleware"
	"github.com/yomiyu15/Workingspacebackend/internal/modules/auth"
	"github.com/yomiyu15/Workingspacebackend/internal/modules/booking"
	"github.com/yomiyu15/Workingspacebackend/internal/modules/catalog"
	"github.com/yomiyu15/Workingspacebackend/internal/notification"
	jwtsvc "github.com/yomiyu15/Workingspacebackend/internal/pkg/jwt"
	applog "github.com/yomiyu15/Workingspacebackend/internal/pkg/logger"
	"github.com/yomiyu15/Workingspacebackend/internal/repository"
)

func main() {
	config.LoadDotEnv(".env", ".env.local")

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("[CONFIG] invalid configuration")
	}

	log, err := applog.Setup(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("[CONFIG] logger setup failed")
	}

	gormLevel := logger.Warn
	if cfg.LogLevel == "debug" {
		gormLevel = logger.Info
	}
	db, err := database.Connect(cfg.DatabaseURL, database.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		LogLevel:        gormLevel,
	})
	if err != nil {
		log.WithError(err).Fatal("[DATABASE] connection failed")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Warn("[DATABASE] close failed")
		}
	}()

	if err := repository.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("[DATABASE] migration failed")
	}

	store := repository.NewStore(db)
	if _, err := catalog.SeedDefaultLocations(context.Background(), store.Locations); err != nil {
		log.WithError(err).Warn("[CATALOG] default location seed failed")
	}

	var notifier booking.Notifier
	if cfg.SMTP.Enabled() {
		notifier = notification.NewSMTPMailer(cfg.SMTP)
		log.WithField("host", cfg.SMTP.Host).Info("[MAIL] smtp notifications enabled")
	} else {
		notifier = notification.NewLogNotifier(log)
	}

	tokens := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	bookingService := booking.NewService(booking.NewStore(store), notifier, booking.Options{
		Currency:  cfg.Currency,
		TxTimeout: cfg.BookingTxTimeout,
		Logger:    log,
	})
	bookingHandler := booking.NewHandler(bookingService)

	catalogHandler := catalog.NewHandler(
		catalog.NewService(store.Workspaces, store.Locations),
		bookingHandler.CheckAvailability,
	)
	authHandler := auth.NewHandler(auth.NewService(store.Admins, tokens))

	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		authHandler.RegisterRoutes(api)
		catalogHandler.RegisterRoutes(api)

		admin := api.Group("")
		admin.Use(middleware.JWTAuth(tokens), middleware.AdminOnly())
		bookingHandler.RegisterRoutes(api, admin)
		catalogHandler.RegisterAdminRoutes(admin)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("[HTTP] server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("[HTTP] server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("[HTTP] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("[HTTP] graceful shutdown failed")
	}
	bookingService.Wait()
	log.Info("[HTTP] server stopped")
}
