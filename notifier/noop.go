package notifier

import (
	"context"
	"log/slog"

	"github.com/Ankith-sara/aarovi-sub000/models"
)

// Noop stands in when the message broker is unavailable. Notifications are
// best-effort, so checkout keeps working and the event is only logged.
type Noop struct {
	log *slog.Logger
}

func NewNoop(log *slog.Logger) *Noop {
	return &Noop{log: log}
}

func (n *Noop) Notify(_ context.Context, kind string, order *models.Order, user *models.User) error {
	n.log.Warn("notification dropped, broker unavailable",
		"kind", kind,
		"order", order.ID.Hex(),
		"user", user.Id.Hex(),
	)
	return nil
}
