// Package scheduler содержит плановый проход по членствам: периодически
// переводит просроченные активные анкеты в Expired и публикует событие в
// очередь уведомлений по каждой затронутой анкете.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/kalyanamapp/matrimony-backend/internal/lib/rabbitmq"
	"github.com/kalyanamapp/matrimony-backend/internal/lib/sl"
	"github.com/kalyanamapp/matrimony-backend/internal/models"
)

// Sweeper описывает операцию планового прохода над членствами.
type Sweeper interface {
	Sweep(ctx context.Context) ([]*models.ExpiredMember, error)
}

// SchedulerService запускает плановый проход по расписанию.
type SchedulerService struct {
	sweeper  Sweeper
	interval time.Duration
	log      *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(sweeper Sweeper, interval time.Duration, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		sweeper:  sweeper,
		interval: interval,
		log:      log,
	}
}

// Run выполняет проход сразу при запуске и далее по тикеру, пока контекст
// не будет отменён. Проход идемпотентен, поэтому наложение запусков из
// нескольких экземпляров безопасно.
func (s *SchedulerService) Run(ctx context.Context, channel *amqp.Channel) {
	s.runSweep(ctx, channel)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("membership sweep stopped")
			return
		case <-ticker.C:
			s.runSweep(ctx, channel)
		}
	}
}

func (s *SchedulerService) runSweep(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting membership expiry sweep")
	swept, err := s.sweeper.Sweep(ctx)
	if err != nil {
		s.log.Error("failed to sweep expired memberships", sl.Err(err))
		return
	}
	if len(swept) == 0 {
		s.log.Info("no expired memberships found")
		return
	}
	s.log.Info("memberships expired", "count", len(swept))
	for _, member := range swept {
		err = rabbitmq.PublishMessage(channel, rabbitmq.ExchangeName, "expired", member)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
