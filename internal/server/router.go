package server

import (
	"context"
	"net/http"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/httpx"
	"bookshelf/internal/listitem"
	"bookshelf/internal/user"
)

// Handlers groups the resource handlers mounted under /api.
type Handlers struct {
	Users     *user.HTTPHandler
	Books     *book.HTTPHandler
	ListItems *listitem.HTTPHandler
}

type Options struct {
	JWTSecret    string
	CORSOrigins  []string
	EnableHSTS   bool
	MaxBodyBytes int64
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *httpx.RateLimitMiddleware
	// Ready backs /readyz. Nil reports ready.
	Ready func(ctx context.Context) error
}

// NewRouter mounts every route and wraps them in the shared middleware chain.
func NewRouter(h Handlers, errs *httpx.ErrorTranslator, opts Options) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := opts.Ready(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	protected := httpx.AuthMiddleware(opts.JWTSecret, errs)
	auth := func(fn http.HandlerFunc) http.Handler {
		return protected(fn)
	}

	router.HandleFunc("POST /api/auth/register", h.Users.Register)
	router.HandleFunc("POST /api/auth/login", h.Users.Login)
	router.Handle("GET /api/auth/me", auth(h.Users.Me))

	router.Handle("GET /api/books/search", auth(h.Books.Search))
	router.Handle("GET /api/books/{id}", auth(h.Books.Get))

	items := h.ListItems
	router.Handle("GET /api/list-items", auth(items.GetMany))
	router.Handle("POST /api/list-items", auth(items.Create))
	router.Handle("GET /api/list-items/{id}", auth(items.RequireOwner(items.GetOne)))
	router.Handle("PUT /api/list-items/{id}", auth(items.RequireOwner(items.Update)))
	router.Handle("DELETE /api/list-items/{id}", auth(items.RequireOwner(items.Delete)))

	middlewares := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware(errs),
		httpx.CORSMiddleware(opts.CORSOrigins),
		httpx.SecurityHeadersMiddleware(opts.EnableHSTS),
	}
	if opts.MaxBodyBytes > 0 {
		middlewares = append(middlewares, httpx.RequestSizeLimitMiddleware(opts.MaxBodyBytes))
	}
	if opts.RateLimiter != nil {
		middlewares = append(middlewares, opts.RateLimiter.Middleware)
	}

	return httpx.Chain(router, middlewares...)
}
