// Package rabbitmq содержит вспомогательные функции для работы с очередью
// сообщений: подключение с ретраями, объявление обменника и очередей
// уведомлений, публикацию и потребление сообщений.
package rabbitmq

// ExchangeName — обменник событий уведомлений о членстве.
const ExchangeName = "notifications"

// QueueConfig связывает очередь с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди уведомлений о членстве.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.expired", RoutingKey: "expired"},
		// при необходимости дополнительные очереди для других воркеров
	}
}
