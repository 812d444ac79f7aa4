// Package read обрабатывает просмотр отдельной анкеты.
package read

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kalyanamapp/matrimony-backend/internal/http/middlewarectx"
	"github.com/kalyanamapp/matrimony-backend/internal/http/response"
	"github.com/kalyanamapp/matrimony-backend/internal/lib/sl"
	"github.com/kalyanamapp/matrimony-backend/internal/services/profile"
)

// Service определяет интерфейс для чтения анкеты.
type Service interface {
	GetProfile(ctx context.Context, actorUID string, targetID int64) (*profile.Detail, error)
}

// Handler обрабатывает запросы на просмотр анкеты.
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
// @Summary Просмотреть анкету
// @Description Возвращает развёрнутую анкету по ID и фиксирует факт просмотра
// @Tags Profiles
// @Produce  json
// @Param id path int true "ID анкеты"
// @Success 200 {object} response.Response "Анкета"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Анкета не найдена"
// @Router /profiles/{id} [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.read"

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

	detail, err := h.service.GetProfile(r.Context(), userUID, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Error("profile not found", slog.Int64("target_id", targetID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("profile not found"))
			return
		}
		log.Error("failed to read profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("profile read", slog.Int64("target_id", targetID))
	render.JSON(w, r, response.StatusOKWithData(detail))
}
