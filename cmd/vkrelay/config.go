package main

import (
	"context"
	"fmt"
	"log"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/vladislavprovich/vk-relay/internal/handler"
	"github.com/vladislavprovich/vk-relay/internal/worker"
	"github.com/vladislavprovich/vk-relay/pkg/client/relay"
	"github.com/vladislavprovich/vk-relay/pkg/client/vk"
	"github.com/vladislavprovich/vk-relay/pkg/logger"
	"github.com/vladislavprovich/vk-relay/pkg/tracing"
)

type Config struct {
	VK      *vk.Config
	Relay   *relay.Config
	Bridge  *worker.BridgeConfig
	Server  *handler.Config
	Logger  *logger.Config
	Tracing *tracing.Config
}

func LoadConfig(ctx context.Context) (*Config, error) {
	var cfg Config

	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: .env file not found or failed to load: %v\n", err)
	}

	if err = envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load root config: %w", err)
	}

	if err = cfg.ValidateWithContext(ctx); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) ValidateWithContext(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, c,
		validation.Field(&c.VK, validation.Required, validation.By(c.longPollFitsTimeout)),
		validation.Field(&c.Relay, validation.Required),
		validation.Field(&c.Bridge, validation.Required),
		validation.Field(&c.Server, validation.Required),
		validation.Field(&c.Logger, validation.Required),
		validation.Field(&c.Tracing, validation.Required),
	)
}

// The long-poll request is held open for up to the wait interval, so the
// HTTP client must outlive it.
func (c *Config) longPollFitsTimeout(_ interface{}) error {
	if c.VK == nil {
		return nil
	}
	if wait := time.Duration(c.VK.LongPollWait) * time.Second; c.VK.HTTPTimeout <= wait {
		return validation.NewError(
			"validation_http_timeout_too_short",
			fmt.Sprintf("VK_HTTP_TIMEOUT must exceed the long poll wait of %s", wait),
		)
	}
	return nil
}
