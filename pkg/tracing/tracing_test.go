package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInit_DisabledIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), &Config{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_EnabledRequiresEndpoint(t *testing.T) {
	_, err := Init(context.Background(), &Config{Enabled: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func TestConfig_Validate(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, (&Config{}).ValidateWithContext(ctx))
	assert.Error(t, (&Config{Enabled: true}).ValidateWithContext(ctx))
	assert.NoError(t, (&Config{Enabled: true, Endpoint: "localhost:4318"}).ValidateWithContext(ctx))
}

func TestStartSpan_RecordsName(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartSpan(context.Background(), "vk.users.get")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "vk.users.get", ended[0].Name())
}
