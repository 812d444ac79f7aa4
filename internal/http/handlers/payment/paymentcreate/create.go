// Package paymentcreate обрабатывает фиксацию успешного платежа.
package paymentcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/kalyanamapp/matrimony-backend/internal/http/middlewarectx"
	"github.com/kalyanamapp/matrimony-backend/internal/http/response"
	"github.com/kalyanamapp/matrimony-backend/internal/lib/sl"
	"github.com/kalyanamapp/matrimony-backend/internal/models"
	"github.com/kalyanamapp/matrimony-backend/internal/services/membership"
)

// Service определяет интерфейс для фиксации платежей.
type Service interface {
	RecordPayment(ctx context.Context, userUID string, amount float64) (*membership.PaymentResult, error)
}

// Handler обрабатывает запросы на фиксацию платежа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Зафиксировать платеж
// @Description Атомарно записывает платеж и продлевает членство на шесть месяцев
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.DummyPayment true "Данные платежа"
// @Success 200 {object} response.Response "Квитанция и новая дата окончания членства"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Платеж не зафиксирован"
// @Router /payments [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"

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

	var req models.DummyPayment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	res, err := h.service.RecordPayment(r.Context(), userUID, req.Amount)
	if err != nil {
		if errors.Is(err, membership.ErrInvalidAmount) {
			log.Error("invalid payment amount", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("payment amount must be positive"))
			return
		}
		log.Error("failed to record payment", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("payment failed"))
		return
	}

	log.Info("payment recorded", slog.String("receipt", res.Receipt))
	render.JSON(w, r, response.StatusOKWithData(res))
}
