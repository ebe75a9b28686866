package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}

	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "parseLevel(%q)", in)
	}
}

func TestConfig_Validate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "json", cfg: Config{Level: "info", Format: "json"}},
		{name: "text_debug", cfg: Config{Level: "Debug", Format: "text"}},
		{name: "bad_level", cfg: Config{Level: "loud", Format: "json"}, wantErr: true},
		{name: "bad_format", cfg: Config{Level: "info", Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateWithContext(ctx)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewWithWriter_JSONCarriesServiceAndComponent(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(context.Background(), &Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "vk-relay",
	}, &buf)
	require.NoError(t, err)

	log.Component("longpoll").Info("poll done")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "vk-relay", line["service"])
	assert.Equal(t, "longpoll", line["component"])
	assert.Equal(t, "poll done", line["msg"])
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(context.Background(), &Config{Level: "warn", Format: "text"}, &buf)
	require.NoError(t, err)

	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}
