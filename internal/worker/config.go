package worker

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const DefaultQueueSize = 100

// BridgeConfig contains configuration for the relay bridge
type BridgeConfig struct {
	QueueSize int `envconfig:"BRIDGE_QUEUE_SIZE" default:"100"`
}

func (c *BridgeConfig) ValidateWithContext(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, c,
		validation.Field(&c.QueueSize, validation.Required, validation.Min(1)),
	)
}
