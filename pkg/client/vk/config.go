package vk

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type Config struct {
	Token          string        `envconfig:"VK_API_TOKEN"`
	GroupID        int64         `envconfig:"VK_GROUP_ID"`
	BaseURL        string        `envconfig:"VK_API_URL" default:"http://api.vk.com/method"`
	Version        string        `envconfig:"VK_API_VERSION" default:"5.199"`
	HTTPTimeout    time.Duration `envconfig:"VK_HTTP_TIMEOUT" default:"35s"`
	LongPollWait   int           `envconfig:"VK_LONGPOLL_WAIT" default:"25"`
	RelayPeerID    int64         `envconfig:"VK_RELAY_PEER_ID"`
	AuthorCacheTTL time.Duration `envconfig:"VK_AUTHOR_CACHE_TTL" default:"10m"`
}

func (c *Config) ValidateWithContext(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, c,
		validation.Field(&c.Token, validation.Required),
		validation.Field(&c.GroupID, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Version, validation.Required),
		validation.Field(&c.HTTPTimeout, validation.Required),
		validation.Field(&c.LongPollWait, validation.Required, validation.Min(1), validation.Max(90)),
		validation.Field(&c.RelayPeerID, validation.Required),
		validation.Field(&c.AuthorCacheTTL, validation.Min(time.Duration(0))),
	)
}
