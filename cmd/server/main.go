package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/agrolink/farmmarket/internal/config"
	"github.com/agrolink/farmmarket/internal/db"
	"github.com/agrolink/farmmarket/internal/events"
	"github.com/agrolink/farmmarket/internal/httpserver"
	"github.com/agrolink/farmmarket/internal/imagehost"
	"github.com/agrolink/farmmarket/internal/logging"
	"github.com/agrolink/farmmarket/internal/repo"
	"github.com/agrolink/farmmarket/internal/search"
	"github.com/agrolink/farmmarket/internal/service"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("database migration error: %v", err)
	}

	store := repo.New(database)
	producer := events.NewProducer(cfg.KafkaBrokers)

	var searchSvc *search.Service
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		searchSvc = &search.Service{ES: esClient, Index: cfg.ESIndex}

		products, err := store.AllProducts(ctx)
		if err != nil {
			log.Fatalf("catalog read error: %v", err)
		}
		if err := searchSvc.Reindex(ctx, products); err != nil {
			logger.Error("search reindex failed", "error", err)
		}
	}

	images := imagehost.NewClient(cfg.ImageHostURL, cfg.ImageHostAPIKey)

	catalogSvc := &service.CatalogService{Repo: store, ShowOutOfStock: cfg.ShowOutOfStock}
	orderSvc := &service.OrderService{Repo: store}
	commentSvc := &service.CommentService{Repo: store}
	userSvc := &service.UserService{Repo: store, JWTSecret: cfg.JWTSecret}
	blogSvc := &service.BlogService{Repo: store}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(httpserver.RequestLogger(logger))

	deps := httpserver.Deps{
		ProductHandler: &httpserver.ProductHandler{Catalog: catalogSvc, Search: searchSvc, Images: images, Producer: producer},
		OrderHandler:   &httpserver.OrderHandler{Orders: orderSvc, Producer: producer, JWTSecret: cfg.JWTSecret},
		CommentHandler: &httpserver.CommentHandler{Comments: commentSvc, Producer: producer},
		UserHandler:    &httpserver.UserHandler{Users: userSvc, Producer: producer},
		BlogHandler:    &httpserver.BlogHandler{Blog: blogSvc, Producer: producer, JWTSecret: cfg.JWTSecret},
		JWTSecret:      cfg.JWTSecret,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
