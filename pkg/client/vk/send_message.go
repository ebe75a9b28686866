package vk

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
)

const methodSendMessage = "messages.send"

func (c *BasicClient) SendMessage(
	ctx context.Context,
	req *SendMessageRequest,
) (*SendMessageResponse, error) {
	if err := req.ValidateWithContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid request for %s: %w", methodSendMessage, err)
	}

	params := Params{}.
		Add("peer_id", strconv.FormatInt(req.PeerID, 10)).
		Add("random_id", strconv.FormatInt(req.RandomID, 10)).
		Add("message", req.Message).
		Add("group_id", strconv.FormatInt(c.cfg.GroupID, 10))

	sentID, err := call[int64](ctx, c, methodSendMessage, params)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "message sent", slog.Int64("sent_id", sentID))

	return &SendMessageResponse{MessageID: sentID}, nil
}
