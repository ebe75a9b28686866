package service

import (
	"context"
	"log/slog"

	"github.com/vladislavprovich/vk-relay/pkg/cache"
	"github.com/vladislavprovich/vk-relay/pkg/client/relay"
	"github.com/vladislavprovich/vk-relay/pkg/client/vk"
)

// RelayService translates between VK messages and the relay protocol.
type RelayService interface {
	ToRelayRequest(ctx context.Context, msg *vk.Message) (*relay.Request, error)
	Deliver(ctx context.Context, resp *relay.Response) error
}

type Service struct {
	logger             *slog.Logger
	client             vk.Client
	cache              cache.Service
	cfg                Config
	convectorToRelay   *ConvectorToRelay
	convectorFromRelay *ConvectorFromRelay
}

// NewRelayService builds the service. cacheService may be nil, which
// disables author caching.
func NewRelayService(
	_ context.Context,
	log *slog.Logger,
	client vk.Client,
	cacheService cache.Service,
	cfg Config,
) *Service {
	return &Service{
		logger:             log,
		client:             client,
		cache:              cacheService,
		cfg:                cfg,
		convectorToRelay:   NewConvectorToRelay(),
		convectorFromRelay: NewConvectorFromRelay(),
	}
}
