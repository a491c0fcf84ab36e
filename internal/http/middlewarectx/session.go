// Package middlewarectx содержит middleware HTTP‑сервера: разрешение
// сессии в пользователя, применение правил доступа к запросу и
// добавление состояния посетителя в контекст запроса.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/session-gate/internal/authz"
	"github.com/magabrotheeeer/session-gate/internal/http/response"
	"github.com/magabrotheeeer/session-gate/internal/lib/sl"
	"github.com/magabrotheeeer/session-gate/internal/models"
	"github.com/magabrotheeeer/session-gate/internal/session"
)

// visitorContextKey — закрытый тип ключа контекста, исключает коллизии.
type visitorContextKey struct{}

var visitorKey = visitorContextKey{}

// VisitorFromContext извлекает состояние посетителя из контекста запроса.
func VisitorFromContext(ctx context.Context) (authz.Visitor, bool) {
	v, ok := ctx.Value(visitorKey).(authz.Visitor)
	return v, ok
}

// ContextWithVisitor возвращает контекст с добавленным состоянием посетителя.
func ContextWithVisitor(ctx context.Context, v authz.Visitor) context.Context {
	return context.WithValue(ctx, visitorKey, v)
}

// UserResolver разрешает сессионный токен в пользователя.
type UserResolver interface {
	ResolveUser(ctx context.Context, token string) (*models.User, error)
}

// SessionGate возвращает middleware — единую точку авторизации,
// вызываемую для каждого запроса до обработчиков. Логика работы:
//  1. Считывает сессионный токен из cookie.
//  2. Разрешает токен в пользователя. Недоступность хранилища не
//     открывает доступ: запрос обрабатывается как анонимный, ошибка
//     логируется отдельно.
//  3. Применяет упорядоченные правила доступа к пути запроса.
//  4. Пропускает запрос дальше, перенаправляет или отклоняет.
func SessionGate(log *slog.Logger, resolver UserResolver, policy authz.Policy, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionGate"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := session.TokenFromRequest(r, cookieName)

			user, err := resolver.ResolveUser(r.Context(), token)
			if err != nil {
				// хранилище недоступно: закрываемся, а не открываемся
				log.Error("failed to resolve session, treating request as anonymous", sl.Err(err))
				user = nil
			}

			visitor := authz.NewVisitor(user)
			decision := authz.Decide(policy, visitor, r.URL.Path)

			switch decision.Kind {
			case authz.KindRedirect:
				http.Redirect(w, r, decision.Location, http.StatusFound)
				return
			case authz.KindReject:
				w.WriteHeader(decision.Status)
				render.JSON(w, r, response.Error("forbidden"))
				return
			}

			ctx := ContextWithVisitor(r.Context(), visitor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
