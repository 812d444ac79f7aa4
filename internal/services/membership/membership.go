// Package membership содержит бизнес-логику жизненного цикла членства:
// одобрение анкеты администратором, фиксацию платежей с продлением
// членства и перевод просроченных анкет в статус Expired.
package membership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kalyanamapp/matrimony-backend/internal/models"
	"github.com/kalyanamapp/matrimony-backend/internal/search"
)

// ErrPaymentFailed возвращается, когда платёж не был зафиксирован.
// Частично применённых платежей не бывает: журнал и анкета обновляются
// в одной транзакции хранилища.
var ErrPaymentFailed = errors.New("payment failed")

// ErrInvalidAmount возвращается на неположительную сумму платежа.
var ErrInvalidAmount = errors.New("payment amount must be positive")

// defaultTermMonths — срок, на который продлевает членство один платёж.
// Хранилище принимает произвольную дату, но действующая политика
// сервиса — фиксированные шесть месяцев.
const defaultTermMonths = 6

// Repository определяет методы хранилища, нужные жизненному циклу членства.
type Repository interface {
	// RecordPayment атомарно записывает платёж и продлевает членство.
	RecordPayment(ctx context.Context, userID int64, amount float64, newExpiry time.Time) (string, error)
	// ApproveUser одобряет анкету; повторный вызов ничего не меняет.
	ApproveUser(ctx context.Context, id int64) error
	// SweepExpired переводит просроченные активные анкеты в Expired.
	SweepExpired(ctx context.Context) ([]*models.ExpiredMember, error)
	// ListPayments возвращает страницу платежей пользователя.
	ListPayments(ctx context.Context, userID int64, limit, offset int) ([]*models.Payment, error)
	// GetUserByUID возвращает анкету по публичному UID.
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
}

// Cache описывает методы для инвалидации кэшированных анкет.
type Cache interface {
	Invalidate(key string) error
}

// PaymentResult — итог успешного платежа.
type PaymentResult struct {
	Receipt       string    `json:"receipt"`
	NewExpiryDate time.Time `json:"new_expiry_date"`
}

// Service реализует бизнес-логику жизненного цикла членства.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// RecordPayment фиксирует успешный платёж пользователя и возвращает номер
// квитанции с новой датой окончания членства. Анкета в статусе Expired
// возвращается в Active; неодобренная анкета остаётся Pending — оплата не
// заменяет одобрение администратора.
func (s *Service) RecordPayment(ctx context.Context, userUID string, amount float64) (*PaymentResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	user, err := s.repo.GetUserByUID(ctx, userUID)
	if err != nil {
		return nil, err
	}
	userID := user.ID

	newExpiry := time.Now().AddDate(0, defaultTermMonths, 0)
	receipt, err := s.repo.RecordPayment(ctx, userID, amount, newExpiry)
	if err != nil {
		s.log.Error("payment not recorded",
			slog.Int64("user_id", userID), slog.Any("err", err))
		return nil, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	s.invalidateProfile(userID)

	s.log.Info("payment recorded",
		slog.Int64("user_id", userID),
		slog.String("receipt", receipt),
		slog.Time("new_expiry", newExpiry))
	return &PaymentResult{Receipt: receipt, NewExpiryDate: newExpiry}, nil
}

// Approve одобряет анкету пользователя. Операция идемпотентна: повторное
// одобрение оставляет состояние без изменений.
func (s *Service) Approve(ctx context.Context, userID int64) error {
	if err := s.repo.ApproveUser(ctx, userID); err != nil {
		return err
	}
	s.invalidateProfile(userID)
	s.log.Info("user approved", slog.Int64("user_id", userID))
	return nil
}

// Sweep переводит все просроченные активные анкеты в Expired и возвращает
// затронутые анкеты. Повторный запуск над теми же данными — no-op, поэтому
// конкурентные проходы не требуют координации.
func (s *Service) Sweep(ctx context.Context) ([]*models.ExpiredMember, error) {
	swept, err := s.repo.SweepExpired(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range swept {
		s.invalidateProfile(m.ID)
	}
	return swept, nil
}

// GetMembershipStatus возвращает эффективный статус членства анкеты по её
// публичному UID. Статус выводится на чтении: активная анкета с прошедшей
// датой окончания считается Expired ещё до планового прохода.
func (s *Service) GetMembershipStatus(ctx context.Context, userUID string) (string, error) {
	user, err := s.repo.GetUserByUID(ctx, userUID)
	if err != nil {
		return "", err
	}
	return search.EffectiveStatus(user.IsApproved, user.Status, user.ExpiryDate, time.Now()), nil
}

// ListPayments возвращает страницу журнала платежей пользователя,
// новые платежи первыми.
func (s *Service) ListPayments(ctx context.Context, userUID string, limit, offset int) ([]*models.Payment, error) {
	user, err := s.repo.GetUserByUID(ctx, userUID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPayments(ctx, user.ID, limit, offset)
}

func (s *Service) invalidateProfile(userID int64) {
	cacheKey := fmt.Sprintf("profile:%d", userID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate profile cache",
			slog.String("key", cacheKey), slog.Any("err", err))
	}
}
