// Package approve обрабатывает одобрение анкеты администратором.
package approve

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kalyanamapp/matrimony-backend/internal/http/response"
	"github.com/kalyanamapp/matrimony-backend/internal/lib/sl"
)

// Service определяет интерфейс для одобрения анкет.
type Service interface {
	Approve(ctx context.Context, userID int64) error
}

// Handler обрабатывает запросы на одобрение анкеты.
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
// @Summary Одобрить анкету
// @Description Одобряет анкету пользователя; повторное одобрение ничего не меняет
// @Tags Admin
// @Produce  json
// @Param id path int true "ID анкеты"
// @Success 200 {object} response.Response "Анкета одобрена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/users/{id}/approve [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.approve"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || userID <= 0 {
		log.Error("invalid user id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	}

	if err := h.service.Approve(r.Context(), userID); err != nil {
		log.Error("failed to approve user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to approve user"))
		return
	}

	log.Info("user approved", slog.Int64("user_id", userID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":      userID,
		"message": "user approved",
	}))
}
