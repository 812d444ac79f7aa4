package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/kalyanamapp/matrimony-backend/internal/http/response"
	"github.com/kalyanamapp/matrimony-backend/internal/lib/sl"
	"github.com/kalyanamapp/matrimony-backend/internal/models"
)

// MembershipServiceInterface определяет интерфейс для проверки статуса членства.
type MembershipServiceInterface interface {
	GetMembershipStatus(ctx context.Context, userUID string) (string, error)
}

// MembershipStatusMiddleware создает middleware для проверки статуса членства пользователя.
// Анкеты в статусе Pending и Expired не получают доступ к поиску и просмотру анкет.
func MembershipStatusMiddleware(log *slog.Logger, members MembershipServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			status, err := members.GetMembershipStatus(r.Context(), userUID)
			if err != nil {
				log.Error("failed to get membership status", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if status != models.StatusActive {
				log.Error("membership not active, access denied", slog.String("status", status))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("membership not active, access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
