package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Ankith-sara/aarovi-sub000/models"
)

const (
	queueName   = "order.notifications"
	dlxExchange = "order.notifications.dlx"
	dlqName     = "order.notifications.dlq"
)

// Event is the message published per order notification. Rendering the
// actual mail/WhatsApp body happens downstream.
type Event struct {
	Kind     string    `json:"kind"`
	OrderID  string    `json:"orderId"`
	UserID   string    `json:"userId"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Amount   float64   `json:"amount"`
	PlacedAt time.Time `json:"placedAt"`
}

// Setup declares the notification queue with its DLX/DLQ pair.
func Setup(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(dlxExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLX: %w", err)
	}
	if _, err := ch.QueueDeclare(dlqName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLQ: %w", err)
	}
	if err := ch.QueueBind(dlqName, queueName, dlxExchange, false, nil); err != nil {
		return fmt.Errorf("bind DLQ: %w", err)
	}
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    dlxExchange,
		"x-dead-letter-routing-key": queueName,
	}); err != nil {
		return fmt.Errorf("declare notification queue: %w", err)
	}
	return nil
}

// AMQP publishes notification events to RabbitMQ. Publish failures surface
// as errors; the order service logs and swallows them.
type AMQP struct {
	ch *amqp.Channel
}

func NewAMQP(ch *amqp.Channel) *AMQP {
	return &AMQP{ch: ch}
}

func (n *AMQP) Notify(ctx context.Context, kind string, order *models.Order, user *models.User) error {
	body, err := json.Marshal(Event{
		Kind:     kind,
		OrderID:  order.ID.Hex(),
		UserID:   user.Id.Hex(),
		Email:    user.Email,
		Name:     user.Name,
		Amount:   order.Amount,
		PlacedAt: order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return n.ch.PublishWithContext(ctx, "", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
}
