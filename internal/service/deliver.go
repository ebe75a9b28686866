package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vladislavprovich/vk-relay/pkg/client/relay"
	"github.com/vladislavprovich/vk-relay/pkg/client/vk"
)

// Deliver sends a relay response to the configured conversation.
func (s *Service) Deliver(ctx context.Context, resp *relay.Response) error {
	text := s.convectorFromRelay.ConvertToOutboundMessage(resp)

	sent, err := s.client.SendMessage(ctx, &vk.SendMessageRequest{
		PeerID:  s.cfg.PeerID,
		Message: text,
	})
	if err != nil {
		return fmt.Errorf("failed to deliver relay response to peer %d: %w", s.cfg.PeerID, err)
	}

	s.logger.DebugContext(ctx, "relay response delivered",
		slog.Int64("peer_id", s.cfg.PeerID),
		slog.Int64("message_id", sent.MessageID),
	)
	return nil
}
