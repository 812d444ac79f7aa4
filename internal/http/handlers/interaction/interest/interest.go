// Package interest обрабатывает выражение интереса к анкете.
package interest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kalyanamapp/matrimony-backend/internal/http/middlewarectx"
	"github.com/kalyanamapp/matrimony-backend/internal/http/response"
	"github.com/kalyanamapp/matrimony-backend/internal/lib/sl"
)

// Service определяет интерфейс для выражения интереса.
type Service interface {
	ExpressInterest(ctx context.Context, actorUID string, targetID int64) (bool, error)
}

// Handler обрабатывает запросы на выражение интереса.
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
// @Summary Выразить интерес
// @Description Фиксирует выражение интереса к анкете; повторное выражение ничего не меняет
// @Tags Interactions
// @Produce  json
// @Param id path int true "ID анкеты"
// @Success 200 {object} response.Response "Интерес зафиксирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /profiles/{id}/interest [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.interaction.interest"

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

	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || targetID <= 0 {
		log.Error("invalid profile id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid profile id"))
		return
	}

	created, err := h.service.ExpressInterest(r.Context(), userUID, targetID)
	if err != nil {
		log.Error("failed to express interest", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("interest expressed",
		slog.Int64("target_id", targetID), slog.Bool("created", created))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"created": created,
	}))
}
