package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/foodapp/api/internal/core/domain"
	"github.com/foodapp/api/internal/core/ports"
)

func NewHandler(
	authHandler *AuthHandler,
	categoryHandler *CategoryHandler,
	productHandler *ProductHandler,
	userHandler *UserHandler,
	signer ports.TokenSigner,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	adminOnly := RequireRole(domain.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
			r.Post("/forgot-password", authHandler.ForgotPassword)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Get("/{id}", categoryHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(JWTAuth(signer), adminOnly)
				r.Post("/", categoryHandler.Create)
				r.Put("/{id}", categoryHandler.Update)
				r.Delete("/{id}", categoryHandler.Delete)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/search", productHandler.Search)
			r.Get("/category/{categoryId}", productHandler.ListByCategory)
			r.Get("/{id}", productHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(JWTAuth(signer), adminOnly)
				r.Post("/", productHandler.Create)
				r.Put("/{id}", productHandler.Update)
				r.Delete("/{id}", productHandler.Delete)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(JWTAuth(signer))
			r.Get("/me", userHandler.GetMe)
		})
	})

	return r
}
