// Package shortlisted обрабатывает просмотр шортлиста пользователя.
package shortlisted

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
	"github.com/kalyanamapp/matrimony-backend/internal/services/profile"
)

// Service определяет интерфейс для чтения шортлиста.
type Service interface {
	Shortlisted(ctx context.Context, actorUID string, pages search.Pages) (*profile.ShortlistPage, error)
}

// Handler обрабатывает запросы на чтение шортлиста.
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
// @Summary Шортлист пользователя
// @Description Возвращает страницу анкет из шортлиста вызывающего, новые первыми
// @Tags Interactions
// @Produce  json
// @Param page query int false "Номер страницы"
// @Param size query int false "Размер страницы"
// @Success 200 {object} response.Response "Страница шортлиста"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /shortlist [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.shortlisted"

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

	pages := list.ParsePages(r)

	res, err := h.service.Shortlisted(r.Context(), userUID, pages)
	if err != nil {
		log.Error("failed to list shortlisted profiles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list shortlist"))
		return
	}

	log.Info("shortlist listed", slog.Int("count", len(res.Profiles)))
	render.JSON(w, r, response.StatusOKWithData(res))
}
