package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vladislavprovich/vk-relay/internal/service"
	"github.com/vladislavprovich/vk-relay/pkg/client/relay"
	"github.com/vladislavprovich/vk-relay/pkg/client/vk"
)

// ErrStreamClosed is returned by Run when the relay stream ends. There is
// no reconnection; the process is expected to exit.
var ErrStreamClosed = errors.New("relay stream closed")

// BridgeMetrics contains bridge counters
type BridgeMetrics struct {
	Enqueued            int64     `json:"enqueued"`
	Sent                int64     `json:"sent"`
	Received            int64     `json:"received"`
	Delivered           int64     `json:"delivered"`
	TranslationFailures int64     `json:"translation_failures"`
	DeliveryFailures    int64     `json:"delivery_failures"`
	QueueSize           int       `json:"queue_size"`
	QueueCapacity       int       `json:"queue_capacity"`
	LastUpdated         time.Time `json:"last_updated"`
}

// Bridge connects the long-poll side with the relay stream. Translated
// messages go through a bounded queue, so a slow stream pushes back on the
// poll loop instead of growing memory.
type Bridge struct {
	logger  *slog.Logger
	service service.RelayService
	client  relay.RelayClient
	apiKey  string
	config  BridgeConfig

	outbound chan *relay.Request

	enqueued            atomic.Int64
	sent                atomic.Int64
	received            atomic.Int64
	delivered           atomic.Int64
	translationFailures atomic.Int64
	deliveryFailures    atomic.Int64
	lastUpdated         atomic.Int64
}

func NewBridge(
	logger *slog.Logger,
	relayService service.RelayService,
	client relay.RelayClient,
	apiKey string,
	config BridgeConfig,
) *Bridge {
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueSize
	}

	b := &Bridge{
		logger:   logger,
		service:  relayService,
		client:   client,
		apiKey:   apiKey,
		config:   config,
		outbound: make(chan *relay.Request, config.QueueSize),
	}
	b.touch()
	return b
}

// Handle translates msg and puts it on the outbound queue. It blocks while
// the queue is full.
func (b *Bridge) Handle(ctx context.Context, msg *vk.Message) error {
	req, err := b.service.ToRelayRequest(ctx, msg)
	if err != nil {
		b.translationFailures.Add(1)
		return fmt.Errorf("failed to translate message %d: %w", msg.ID, err)
	}

	select {
	case b.outbound <- req:
		b.enqueued.Add(1)
		b.touch()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run opens the relay stream and forwards in both directions until ctx is
// done or the stream ends.
func (b *Bridge) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	stream, err := relay.Open(gctx, b.client, b.apiKey)
	if err != nil {
		return err
	}

	b.logger.InfoContext(ctx, "relay stream opened", slog.Int("queue_capacity", b.config.QueueSize))

	g.Go(func() error {
		return b.sendLoop(gctx, stream)
	})
	g.Go(func() error {
		return b.receiveLoop(gctx, stream)
	})

	return g.Wait()
}

func (b *Bridge) Metrics() *BridgeMetrics {
	return &BridgeMetrics{
		Enqueued:            b.enqueued.Load(),
		Sent:                b.sent.Load(),
		Received:            b.received.Load(),
		Delivered:           b.delivered.Load(),
		TranslationFailures: b.translationFailures.Load(),
		DeliveryFailures:    b.deliveryFailures.Load(),
		QueueSize:           len(b.outbound),
		QueueCapacity:       cap(b.outbound),
		LastUpdated:         time.Unix(0, b.lastUpdated.Load()),
	}
}

func (b *Bridge) sendLoop(ctx context.Context, stream relay.Stream) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-b.outbound:
			if err := stream.Send(req); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("%w: send: %w", ErrStreamClosed, err)
			}
			b.sent.Add(1)
			b.touch()
		}
	}
}

func (b *Bridge) receiveLoop(ctx context.Context, stream relay.Stream) error {
	for {
		resp, err := stream.Recv()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: server ended the stream", ErrStreamClosed)
			}
			return fmt.Errorf("%w: receive: %w", ErrStreamClosed, err)
		}
		b.received.Add(1)
		b.touch()

		if err = b.service.Deliver(ctx, resp); err != nil {
			b.deliveryFailures.Add(1)
			b.logger.ErrorContext(ctx, "failed to deliver relay response", slog.Any("error", err))
			continue
		}
		b.delivered.Add(1)
	}
}

func (b *Bridge) touch() {
	b.lastUpdated.Store(time.Now().UnixNano())
}
