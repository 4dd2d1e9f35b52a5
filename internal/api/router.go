package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/seojin-dev/todo-calendar-api/internal/api/handlers"
	"github.com/seojin-dev/todo-calendar-api/internal/api/middleware"
	"github.com/seojin-dev/todo-calendar-api/internal/config"
	"github.com/seojin-dev/todo-calendar-api/internal/repository"
	"github.com/seojin-dev/todo-calendar-api/internal/service"
)

func NewRouter(services *service.Services, repos *repository.Repositories, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	respond := handlers.NewResponder(cfg.IsDevelopment())

	authHandler := handlers.NewAuthHandler(services.Auth, respond)
	userHandler := handlers.NewUserHandler(services.User, respond)
	todoHandler := handlers.NewTodoHandler(services.Todo, respond)
	trashHandler := handlers.NewTrashHandler(services.Todo, respond)
	holidayHandler := handlers.NewHolidayHandler(services.Holiday, respond)
	calendarHandler := handlers.NewCalendarHandler(services.Calendar, respond)

	requireAuth := middleware.Auth(services.Auth, repos.User, respond.Error)
	requireAdmin := middleware.AdminOnly(cfg.AdminEmails, respond.Error)

	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.SignUp)
			r.Post("/signin", authHandler.SignIn)
			r.Post("/signout", authHandler.SignOut)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/todos", func(r chi.Router) {
				r.Get("/", todoHandler.List)
				r.Post("/", todoHandler.Create)
				r.Get("/{id}", todoHandler.Get)
				r.Put("/{id}", todoHandler.Update)
				r.Delete("/{id}", todoHandler.Delete)
				r.Patch("/{id}/complete", todoHandler.ToggleComplete)
			})

			r.Route("/trash", func(r chi.Router) {
				r.Get("/", trashHandler.List)
				r.Post("/{id}/restore", trashHandler.Restore)
				r.Delete("/{id}", trashHandler.Purge)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", holidayHandler.List)
				r.With(requireAdmin).Post("/", holidayHandler.Add)
			})

			r.Get("/calendar", calendarHandler.Get)

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", userHandler.GetProfile)
				r.Put("/", userHandler.UpdateProfile)
				r.Put("/password", userHandler.ChangePassword)
			})
		})
	})

	return r
}
