package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	handler "github.com/foodapp/api/internal/adapters/handler/http"
	repo "github.com/foodapp/api/internal/adapters/repository/postgres"
	"github.com/foodapp/api/internal/adapters/token/jwt"
	"github.com/foodapp/api/internal/core/services"
	"github.com/foodapp/api/internal/platform/config"
	"github.com/foodapp/api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	slogger := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	db, err := sql.Open("postgres", cfg.DatabaseURL())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	userRepo := repo.NewUserRepository(db)
	tokenRepo := repo.NewRefreshTokenRepository(db)
	categoryRepo := repo.NewCategoryRepository(db)
	productRepo := repo.NewProductRepository(db)

	signer := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)

	authSvc := services.NewAuthService(userRepo, tokenRepo, signer, cfg.JWT.RefreshTokenTTL, slogger)
	categorySvc := services.NewCategoryService(categoryRepo)
	productSvc := services.NewProductService(productRepo, categoryRepo)
	userSvc := services.NewUserService(userRepo)

	router := handler.NewHandler(
		handler.NewAuthHandler(authSvc),
		handler.NewCategoryHandler(categorySvc),
		handler.NewProductHandler(productSvc),
		handler.NewUserHandler(userSvc),
		signer,
	)

	server := &stdhttp.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slogger.Info("server started", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	slogger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
