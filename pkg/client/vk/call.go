package vk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vladislavprovich/vk-relay/pkg/tracing"
)

// Param is a single query parameter. Params keep the order they were added in.
type Param struct {
	Key   string
	Value string
}

type Params []Param

func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

func (p Params) Encode() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}

// envelope is the outer wrapper of every API response: exactly one of the keys is set.
type envelope struct {
	Response json.RawMessage `json:"response"`
	Error    *APIError       `json:"error"`
}

func call[T any](ctx context.Context, c *BasicClient, method string, params Params) (T, error) {
	var zero T

	ctx, span := tracing.StartSpan(ctx, "vk."+method, attribute.String("vk.method", method))
	defer span.End()

	query := params.
		Add("access_token", c.cfg.Token).
		Add("v", c.cfg.Version).
		Encode()
	endpoint := fmt.Sprintf("%s/%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), method, query)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return zero, fmt.Errorf("error creating new request for %s: %w", method, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return zero, fmt.Errorf("error doing request for %s: %w", method, err)
	}

	defer func() {
		if err = res.Body.Close(); err != nil {
			c.logger.ErrorContext(ctx,
				"error closing response body",
				slog.String("method", method),
				slog.Any("error", err),
			)
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return zero, fmt.Errorf("error reading response body for %s: %w", method, err)
	}

	if res.StatusCode != http.StatusOK {
		return zero, c.decodeFailure(ctx, method, body, fmt.Errorf("unexpected status %d", res.StatusCode))
	}

	var env envelope
	if err = DecodeStrict(body, &env); err != nil {
		return zero, c.decodeFailure(ctx, method, body, err)
	}

	hasResponse := len(env.Response) > 0
	switch {
	case env.Error != nil && hasResponse:
		return zero, c.decodeFailure(ctx, method, body, errors.New("envelope carries both response and error"))
	case env.Error != nil:
		span.SetStatus(codes.Error, env.Error.Error())
		span.SetAttributes(attribute.Int("vk.error_code", int(env.Error.Code)))
		return zero, env.Error
	case !hasResponse:
		return zero, c.decodeFailure(ctx, method, body, errors.New("envelope carries neither response nor error"))
	}

	var resp T
	if err = DecodeStrict(env.Response, &resp); err != nil {
		return zero, c.decodeFailure(ctx, method, body, err)
	}

	return resp, nil
}

func (c *BasicClient) decodeFailure(ctx context.Context, method string, body []byte, err error) error {
	c.logger.ErrorContext(ctx,
		fmt.Sprintf("%v: %s", err, body),
		slog.String("method", method),
	)
	return &DecodeError{
		Method: method,
		Body:   string(body),
		Err:    err,
	}
}

// DecodeStrict decodes data into v, rejecting fields that v does not declare.
func DecodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after top-level value")
	}
	return nil
}
