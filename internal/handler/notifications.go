package handler

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/hrms-dev/attendance-manager/backend/internal/domain"
)

// publishNotification 把通知投递到消息队列，由 mail worker 负责实际发信
func (h *Handler) publishNotification(msgType string, to string, data any) error {
	if h.notifyChannel == nil {
		return nil
	}

	body, err := json.Marshal(domain.NotificationMessage{
		Type: msgType,
		To:   to,
		Data: data,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.notifyChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
