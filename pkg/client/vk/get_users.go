package vk

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const methodGetUsers = "users.get"

func (c *BasicClient) GetUsers(
	ctx context.Context,
	req *GetUsersRequest,
) (*GetUsersResponse, error) {
	if err := req.ValidateWithContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid request for %s: %w", methodGetUsers, err)
	}

	ids := make([]string, len(req.UserIDs))
	for i, id := range req.UserIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	params := Params{}.Add("user_ids", strings.Join(ids, ","))

	users, err := call[[]User](ctx, c, methodGetUsers, params)
	if err != nil {
		return nil, err
	}

	return &GetUsersResponse{Users: users}, nil
}
