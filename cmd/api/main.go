package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/httpx"
	"bookshelf/internal/listitem"
	"bookshelf/internal/platform/postgres"
	"bookshelf/internal/server"
	"bookshelf/internal/user"
)

func main() {
	loadEnvFiles()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := postgres.Open(ctx, cfg.DatabaseDSN, 2*time.Second)
	if err != nil {
		log.Fatalf("cannot open database: %v", err)
	}
	defer dbPool.Close()
	log.Println("database connection OK")

	errs := httpx.NewErrorTranslator()

	bookService := book.NewService(book.NewPostgresRepo(dbPool, cfg.DBTimeout))
	userService := user.NewService(user.NewPostgresRepo(dbPool, cfg.DBTimeout), cfg.JWTSecret, cfg.TokenTTL)
	listItemService := listitem.NewService(listitem.NewPostgresRepo(dbPool, cfg.DBTimeout), bookService)

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rateLimiter.Run(ctx)

	handler := server.NewRouter(server.Handlers{
		Users:     user.NewHTTPHandler(userService, errs),
		Books:     book.NewHTTPHandler(bookService, errs),
		ListItems: listitem.NewHTTPHandler(listItemService, errs),
	}, errs, server.Options{
		JWTSecret:    cfg.JWTSecret,
		CORSOrigins:  cfg.CORSOrigins,
		EnableHSTS:   cfg.EnableHSTS,
		MaxBodyBytes: cfg.MaxBodyBytes,
		RateLimiter:  rateLimiter,
		Ready:        dbPool.Ping,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
	log.Println("server stopped")
}
