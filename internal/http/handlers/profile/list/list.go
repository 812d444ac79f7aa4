// Package list обрабатывает просмотр каталога анкет участником.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/kalyanamapp/matrimony-backend/internal/http/middlewarectx"
	"github.com/kalyanamapp/matrimony-backend/internal/http/response"
	"github.com/kalyanamapp/matrimony-backend/internal/lib/sl"
	"github.com/kalyanamapp/matrimony-backend/internal/search"
	searchsvc "github.com/kalyanamapp/matrimony-backend/internal/services/search"
)

// Service определяет интерфейс для просмотра каталога анкет.
type Service interface {
	Browse(ctx context.Context, f search.Filter, callerUID string, pages search.Pages) (*searchsvc.BrowseResult, error)
}

// Handler обрабатывает запросы на просмотр каталога.
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
// @Summary Каталог анкет
// @Description Возвращает страницу одобренных анкет противоположного пола по фильтрам
// @Tags Profiles
// @Produce  json
// @Param age_min query int false "Минимальный возраст"
// @Param age_max query int false "Максимальный возраст"
// @Param religions query string false "Религии через запятую"
// @Param castes query string false "Касты через запятую"
// @Param states query string false "Штаты через запятую"
// @Param professions query string false "Профессии через запятую"
// @Param father_professions query string false "Профессии отца через запятую"
// @Param search query string false "Подстрока поиска"
// @Param has_photo query bool false "Только с фотографией"
// @Param is_new query bool false "Только новые анкеты"
// @Param page query int false "Номер страницы"
// @Param size query int false "Размер страницы"
// @Success 200 {object} response.Response "Страница каталога"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /profiles [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.list"

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
	pages := ParsePages(r)

	res, err := h.service.Browse(r.Context(), filter, userUID, pages)
	if err != nil {
		log.Error("failed to browse profiles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list profiles"))
		return
	}

	log.Info("profiles listed",
		slog.Int("count", len(res.Profiles)), slog.Int("total", res.TotalCount))
	render.JSON(w, r, response.StatusOKWithData(res))
}

// ParsePages извлекает параметры пагинации из запроса. Нечисловые и
// неположительные значения отбрасываются, нормализация дефолтов — на
// стороне сервиса.
func ParsePages(r *http.Request) search.Pages {
	var pages search.Pages
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		pages.Page = page
	}
	if size, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil {
		pages.Size = size
	}
	return pages
}
