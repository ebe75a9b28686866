package dispatcher

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/vladislavprovich/vk-relay/pkg/client/vk"
)

// Handler processes one incoming message.
type Handler interface {
	Handle(ctx context.Context, msg *vk.Message) error
}

type HandlerFunc func(ctx context.Context, msg *vk.Message) error

func (f HandlerFunc) Handle(ctx context.Context, msg *vk.Message) error {
	return f(ctx, msg)
}

type Metrics struct {
	Dispatched int64 `json:"dispatched"`
	Failed     int64 `json:"failed"`
	Skipped    int64 `json:"skipped"`
}

// Dispatcher routes long-poll updates to the registered handler. A handler
// failure is logged and never stops the rest of the batch.
type Dispatcher struct {
	logger  *slog.Logger
	handler Handler

	dispatched atomic.Int64
	failed     atomic.Int64
	skipped    atomic.Int64
}

func New(logger *slog.Logger, handler Handler) *Dispatcher {
	return &Dispatcher{
		logger:  logger,
		handler: handler,
	}
}

func (d *Dispatcher) DispatchBatch(ctx context.Context, updates []vk.Update) {
	for i := range updates {
		if ctx.Err() != nil {
			return
		}
		d.Dispatch(ctx, &updates[i])
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, update *vk.Update) {
	switch {
	case update.Type == vk.UpdateTypeMessageNew && update.MessageNew != nil:
		msg := &update.MessageNew.Message
		d.dispatched.Add(1)
		if err := d.handler.Handle(ctx, msg); err != nil {
			d.failed.Add(1)
			d.logger.ErrorContext(ctx, "message handler failed",
				slog.String("event_id", update.EventID),
				slog.Int64("message_id", msg.ID),
				slog.Int64("peer_id", msg.PeerID),
				slog.Any("error", err),
			)
		}
	default:
		d.skipped.Add(1)
		d.logger.WarnContext(ctx, "update without handler", slog.String("type", update.Type))
	}
}

func (d *Dispatcher) Metrics() Metrics {
	return Metrics{
		Dispatched: d.dispatched.Load(),
		Failed:     d.failed.Load(),
		Skipped:    d.skipped.Load(),
	}
}
