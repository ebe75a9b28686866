package service

import (
	"context"
	"log/slog"

	"github.com/vladislavprovich/vk-relay/pkg/client/relay"
	"github.com/vladislavprovich/vk-relay/pkg/client/vk"
)

func (s *Service) ToRelayRequest(ctx context.Context, msg *vk.Message) (*relay.Request, error) {
	author, err := s.ResolveAuthor(ctx, msg)
	if err != nil {
		s.logger.ErrorContext(ctx, "service ResolveAuthor",
			slog.Int64("message_id", msg.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return s.convectorToRelay.ConvertToRelayRequest(msg, author), nil
}
