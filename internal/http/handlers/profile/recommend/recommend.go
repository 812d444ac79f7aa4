// Package recommend обрабатывает ленту рекомендаций.
package recommend

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

// Service определяет интерфейс для ленты рекомендаций.
type Service interface {
	Recommendations(ctx context.Context, f search.Filter, callerUID string, pages search.Pages) (*searchsvc.BrowseResult, error)
}

// Handler обрабатывает запросы на ленту рекомендаций.
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
// @Summary Лента рекомендаций
// @Description Та же выборка, что и каталог, но анкеты той же религии идут первыми
// @Tags Profiles
// @Produce  json
// @Param page query int false "Номер страницы"
// @Param size query int false "Размер страницы"
// @Success 200 {object} response.Response "Страница рекомендаций"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /profiles/recommendations [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.recommend"

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

	res, err := h.service.Recommendations(r.Context(), filter, userUID, pages)
	if err != nil {
		log.Error("failed to build recommendations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list recommendations"))
		return
	}

	log.Info("recommendations listed",
		slog.Int("count", len(res.Profiles)), slog.Int("total", res.TotalCount))
	render.JSON(w, r, response.StatusOKWithData(res))
}
