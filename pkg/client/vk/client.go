package vk

import (
	"context"
	"log/slog"
	"net/http"
)

type Client interface {
	GetLongPollServer(
		ctx context.Context,
		req *GetLongPollServerRequest,
	) (*GetLongPollServerResponse, error)
	SendMessage(
		ctx context.Context,
		req *SendMessageRequest,
	) (*SendMessageResponse, error)
	GetUsers(
		ctx context.Context,
		req *GetUsersRequest,
	) (*GetUsersResponse, error)
}

type BasicClient struct {
	client *http.Client
	logger *slog.Logger
	cfg    *Config
}

func NewBasicClient(httpClient *http.Client, cfg *Config, log *slog.Logger) *BasicClient {
	return &BasicClient{
		client: httpClient,
		logger: log,
		cfg:    cfg,
	}
}
