package logger

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

type Config struct {
	Level       string `envconfig:"LOGGER_LEVEL" default:"info"`
	Format      string `envconfig:"LOGGER_FORMAT" default:"json"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"vk-relay"`
	WithSource  bool   `envconfig:"LOGGER_WITH_SOURCE" default:"false"`
}

func (c *Config) ValidateWithContext(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, c,
		validation.Field(&c.Level,
			validation.Required,
			validation.By(func(value interface{}) error {
				if _, ok := levels[strings.ToLower(value.(string))]; !ok {
					return validation.NewError("validation_invalid_log_level", "invalid log level")
				}
				return nil
			}),
		),
		validation.Field(&c.Format,
			validation.Required,
			validation.In(FormatJSON, FormatText),
		),
	)
}
