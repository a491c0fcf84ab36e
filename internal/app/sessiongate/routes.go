package sessiongate

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/session-gate/internal/authz"
	"github.com/magabrotheeeer/session-gate/internal/config"
	"github.com/magabrotheeeer/session-gate/internal/http/handlers/admin/approve"
	"github.com/magabrotheeeer/session-gate/internal/http/handlers/admin/pending"
	"github.com/magabrotheeeer/session-gate/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/session-gate/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/session-gate/internal/http/handlers/auth/register"
	notescreate "github.com/magabrotheeeer/session-gate/internal/http/handlers/notes/create"
	noteslist "github.com/magabrotheeeer/session-gate/internal/http/handlers/notes/list"
	"github.com/magabrotheeeer/session-gate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/session-gate/internal/http/response"
	services "github.com/magabrotheeeer/session-gate/internal/services/auth"
	"github.com/magabrotheeeer/session-gate/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, authService *services.AuthService, db *repository.Storage) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	policy := authz.DefaultPolicy()

	// Группа под контролем сессионных правил: каждый запрос проходит
	// через единую точку авторизации до обработчиков.
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionGate(logger, authService, policy, cfg.Session.CookieName))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, response.StatusOKWithData(map[string]any{
				"service": "session-gate",
			}))
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/auth/register/", register.New(logger, authService, cfg.Session.CookieName, cfg.Session.TTL).ServeHTTP)
			r.Post("/auth/login/", login.New(logger, authService, cfg.Session.CookieName, cfg.Session.TTL).ServeHTTP)
		})

		r.Post("/auth/logout/", logout.New(logger, authService, cfg.Session.CookieName).ServeHTTP)
		r.Get("/auth/waiting-room/", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, response.StatusOKWithData(map[string]any{
				"message": "your account is awaiting administrator approval",
			}))
		})

		r.Get("/admin/pending/", pending.New(logger, authService).ServeHTTP)
		r.Post("/admin/approve/", approve.New(logger, authService).ServeHTTP)

		r.Get("/notes/", noteslist.New(logger, db).ServeHTTP)
		r.Post("/notes/", notescreate.New(logger, db).ServeHTTP)
	})

	// Служебные конечные точки вне сессионных правил.
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
