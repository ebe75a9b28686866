package tracing

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Config struct {
	Enabled     bool   `envconfig:"OTEL_ENABLED" default:"false"`
	Endpoint    string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"vk-relay"`
	Environment string `envconfig:"OTEL_ENVIRONMENT" default:"dev"`
	Insecure    bool   `envconfig:"OTEL_INSECURE" default:"false"`
}

func (c *Config) ValidateWithContext(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, c,
		validation.Field(&c.Endpoint, validation.When(c.Enabled, validation.Required)),
	)
}
