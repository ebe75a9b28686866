package vk

import (
	"context"
	"fmt"
	"strconv"
)

const methodGetLongPollServer = "groups.getLongPollServer"

func (c *BasicClient) GetLongPollServer(
	ctx context.Context,
	req *GetLongPollServerRequest,
) (*GetLongPollServerResponse, error) {
	if err := req.ValidateWithContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid request for %s: %w", methodGetLongPollServer, err)
	}

	params := Params{}.Add("group_id", strconv.FormatInt(req.GroupID, 10))

	resp, err := call[GetLongPollServerResponse](ctx, c, methodGetLongPollServer, params)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}
