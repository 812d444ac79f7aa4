package rabbitmq

import (
	"context"
	"fmt"

	"github.com/streadway/amqp"
)

// ConsumeQueue читает сообщения очереди и передаёт тело каждого в handle.
// Сообщение подтверждается только после успешной обработки; при ошибке
// возвращается в очередь. Блокируется до отмены контекста.
func ConsumeQueue(ctx context.Context, ch *amqp.Channel, queueName string, handle func(body []byte) error) error {
	const op = "rabbitmq.ConsumeQueue"

	deliveries, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("%s: delivery channel closed", op)
			}
			if err := handle(d.Body); err != nil {
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}
