package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/unrolled/render"

	"github.com/vladislavprovich/vk-relay/internal/dispatcher"
	"github.com/vladislavprovich/vk-relay/internal/longpoll"
	"github.com/vladislavprovich/vk-relay/internal/worker"
	"github.com/vladislavprovich/vk-relay/pkg/cache"
)

type Handler interface {
	Health(w http.ResponseWriter, r *http.Request)
	RelayStats(w http.ResponseWriter, r *http.Request)
}

type SessionSource interface {
	Cursor() longpoll.Cursor
	State() longpoll.State
}

type BridgeSource interface {
	Metrics() *worker.BridgeMetrics
}

type DispatcherSource interface {
	Metrics() dispatcher.Metrics
}

type CacheSource interface {
	GetStats(ctx context.Context) (*cache.Stats, error)
}

type ServiceHandler struct {
	session    SessionSource
	bridge     BridgeSource
	dispatcher DispatcherSource
	cache      CacheSource
	logger     *slog.Logger
	cfg        *Config
	render     *render.Render
}

func NewServiceHandler(
	session SessionSource,
	bridge BridgeSource,
	dispatcher DispatcherSource,
	cache CacheSource,
	logger *slog.Logger,
	cfg *Config,
	render *render.Render,
) *ServiceHandler {
	return &ServiceHandler{
		session:    session,
		bridge:     bridge,
		dispatcher: dispatcher,
		cache:      cache,
		logger:     logger,
		cfg:        cfg,
		render:     render,
	}
}

func (h *ServiceHandler) sendJSON(ctx context.Context, w io.Writer, status int, body any) {
	if err := h.render.JSON(w, status, body); err != nil {
		h.logger.ErrorContext(ctx, "render JSON error", slog.Any("error", err))
	}
}
