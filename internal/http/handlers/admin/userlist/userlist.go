// Package userlist обрабатывает административный список пользователей.
package userlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kalyanamapp/matrimony-backend/internal/http/handlers/profile/list"
	"github.com/kalyanamapp/matrimony-backend/internal/http/middlewarectx"
	"github.com/kalyanamapp/matrimony-backend/internal/http/response"
	"github.com/kalyanamapp/matrimony-backend/internal/lib/sl"
	"github.com/kalyanamapp/matrimony-backend/internal/search"
	searchsvc "github.com/kalyanamapp/matrimony-backend/internal/services/search"
)

// Service определяет интерфейс для административного списка пользователей.
type Service interface {
	AdminList(ctx context.Context, f search.Filter, callerUID string, pages search.Pages) (*searchsvc.AdminListResult, error)
}

// Handler обрабатывает запросы административного списка.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает страницу пользователей без ограничения по полу, с фильтрацией по статусам членства
// @Tags Admin
// @Produce  json
// @Param statuses query string false "Статусы через запятую: Pending, Active, Expired"
// @Param search query string false "Подстрока поиска по имени, почте, телефону или профессии"
// @Param page query int false "Номер страницы"
// @Param size query int false "Размер страницы"
// @Success 200 {object} response.Response "Страница пользователей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/users [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user UID not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	filter := search.ParseFilter(r.URL.Query())
	pages := list.ParsePages(r)

	res, err := h.service.AdminList(r.Context(), filter, userUID, pages)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list users"))
		return
	}

	log.Info("users listed",
		slog.Int("count", len(res.Users)), slog.Int("total", res.TotalCount))
	render.JSON(w, r, response.StatusOKWithData(res))
}
