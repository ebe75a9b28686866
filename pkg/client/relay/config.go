package relay

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Config struct {
	Host     string `envconfig:"RELAY_HOST"`
	APIKey   string `envconfig:"RELAY_API_KEY"`
	Insecure bool   `envconfig:"RELAY_INSECURE" default:"false"`
}

func (c *Config) ValidateWithContext(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, c,
		validation.Field(&c.Host, validation.Required),
		validation.Field(&c.APIKey, validation.Required),
	)
}
