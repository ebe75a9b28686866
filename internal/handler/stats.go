package handler

import (
	"log/slog"
	"net/http"

	"github.com/vladislavprovich/vk-relay/internal/dispatcher"
	"github.com/vladislavprovich/vk-relay/internal/worker"
	"github.com/vladislavprovich/vk-relay/pkg/cache"
	"github.com/vladislavprovich/vk-relay/pkg/client/vk"
)

type CursorStats struct {
	State  string       `json:"state"`
	Server string       `json:"server,omitempty"`
	TS     vk.Timestamp `json:"ts"`
}

type RelayStatsResponse struct {
	APIVersion  string                `json:"api_version"`
	Cursor      CursorStats           `json:"cursor"`
	Bridge      *worker.BridgeMetrics `json:"bridge"`
	Dispatcher  dispatcher.Metrics    `json:"dispatcher"`
	AuthorCache *cache.Stats          `json:"author_cache,omitempty"`
}

// RelayStats reports the poll cursor and the relay counters. The long-poll
// key is a credential and is never exposed.
func (h *ServiceHandler) RelayStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cursor := h.session.Cursor()

	stats := CursorStats{
		State: h.session.State().String(),
		TS:    cursor.TS,
	}
	if cursor.Server != nil {
		stats.Server = cursor.Server.Host
	}

	resp := RelayStatsResponse{
		APIVersion: h.cfg.APIVersion,
		Cursor:     stats,
		Bridge:     h.bridge.Metrics(),
		Dispatcher: h.dispatcher.Metrics(),
	}

	if h.cache != nil {
		cacheStats, err := h.cache.GetStats(ctx)
		if err != nil {
			h.logger.WarnContext(ctx, "failed to read author cache stats", slog.Any("error", err))
		} else {
			resp.AuthorCache = cacheStats
		}
	}

	h.sendJSON(ctx, w, http.StatusOK, resp)
}
