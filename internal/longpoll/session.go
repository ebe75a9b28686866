package longpoll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vladislavprovich/vk-relay/pkg/client/vk"
	"github.com/vladislavprovich/vk-relay/pkg/tracing"
)

const DefaultWait = 25

var ErrNotInitialized = errors.New("long poll session is not initialized")

type State int32

const (
	StateInitializing State = iota
	StatePolling
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StatePolling:
		return "polling"
	default:
		return "unknown"
	}
}

// Cursor identifies the next window of events to fetch.
type Cursor struct {
	Key    string
	Server *url.URL
	TS     vk.Timestamp
}

type Config struct {
	GroupID int64
	Wait    int
}

// Batch is the result of one poll round. Updates is empty when the body
// could not be decoded into the typed schema.
type Batch struct {
	ID      string
	TS      vk.Timestamp
	Updates []vk.Update
}

// Dispatcher consumes the updates of each batch, in order.
type Dispatcher interface {
	DispatchBatch(ctx context.Context, updates []vk.Update)
}

// Session owns the poll cursor. The cursor is only written inside
// Initialize and PollOnce; Cursor and State are safe to call concurrently.
type Session struct {
	logger     *slog.Logger
	client     vk.Client
	httpClient *http.Client
	cfg        Config

	mu     sync.RWMutex
	cursor Cursor
	state  State
}

func NewSession(logger *slog.Logger, client vk.Client, httpClient *http.Client, cfg Config) *Session {
	if cfg.Wait <= 0 {
		cfg.Wait = DefaultWait
	}
	return &Session{
		logger:     logger,
		client:     client,
		httpClient: httpClient,
		cfg:        cfg,
		state:      StateInitializing,
	}
}

func (s *Session) Cursor() Cursor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Initialize obtains the server, key and first ts. Any error is fatal for the session.
func (s *Session) Initialize(ctx context.Context) error {
	resp, err := s.client.GetLongPollServer(ctx, &vk.GetLongPollServerRequest{GroupID: s.cfg.GroupID})
	if err != nil {
		return fmt.Errorf("failed to get long poll server: %w", err)
	}

	server, err := url.Parse(resp.Server)
	if err != nil {
		return fmt.Errorf("invalid long poll server %q: %w", resp.Server, err)
	}
	if server.Scheme == "" || server.Host == "" {
		return fmt.Errorf("invalid long poll server %q: missing scheme or host", resp.Server)
	}

	s.mu.Lock()
	s.cursor = Cursor{Key: resp.Key, Server: server, TS: resp.TS}
	s.state = StatePolling
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "long poll session initialized",
		slog.String("server", server.String()),
		slog.String("ts", resp.TS.String()),
	)
	return nil
}

// PollOnce runs one poll round. The cursor is advanced from the raw ts
// before the typed decode, so a batch with an unknown schema is dropped
// instead of being fetched again.
func (s *Session) PollOnce(ctx context.Context) (*Batch, error) {
	cursor := s.Cursor()
	if cursor.Server == nil {
		return nil, ErrNotInitialized
	}

	batchID := uuid.NewString()
	ctx, span := tracing.StartSpan(ctx, "longpoll.poll",
		attribute.String("longpoll.batch_id", batchID),
		attribute.Int64("longpoll.ts", int64(cursor.TS)),
	)
	defer span.End()

	body, err := s.check(ctx, cursor)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	ts, err := extractTS(body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	s.advance(ts)

	resp, err := vk.DecodeLongPollResponse(body)
	if err != nil {
		s.logger.ErrorContext(ctx, "error deserializing long poll response",
			slog.String("batch_id", batchID),
			slog.Any("error", err),
			slog.String("body", string(body)),
		)
		return &Batch{ID: batchID, TS: ts}, nil
	}

	if resp.Failed != 0 {
		s.logger.WarnContext(ctx, "long poll history is outdated, events were skipped",
			slog.String("batch_id", batchID),
			slog.Int("failed", resp.Failed),
			slog.String("ts", resp.TS.String()),
		)
	}

	s.advance(resp.TS)
	span.SetAttributes(attribute.Int("longpoll.updates", len(resp.Updates)))

	return &Batch{ID: batchID, TS: resp.TS, Updates: resp.Updates}, nil
}

// Run initializes the session and polls until ctx is done or a fatal error happens.
func (s *Session) Run(ctx context.Context, dispatcher Dispatcher) error {
	if err := s.Initialize(ctx); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch, err := s.PollOnce(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}

		if len(batch.Updates) > 0 {
			s.logger.DebugContext(ctx, "long poll batch received",
				slog.String("batch_id", batch.ID),
				slog.Int("updates", len(batch.Updates)),
			)
			dispatcher.DispatchBatch(ctx, batch.Updates)
		}
	}
}

func (s *Session) check(ctx context.Context, cursor Cursor) ([]byte, error) {
	endpoint := *cursor.Server
	query := endpoint.Query()
	query.Set("act", "a_check")
	query.Set("key", cursor.Key)
	query.Set("ts", cursor.TS.String())
	query.Set("wait", strconv.Itoa(s.cfg.Wait))
	endpoint.RawQuery = query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating long poll request: %w", err)
	}

	res, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error doing long poll request: %w", err)
	}

	defer func() {
		if err = res.Body.Close(); err != nil {
			s.logger.ErrorContext(ctx, "error closing long poll response body", slog.Any("error", err))
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading long poll response body: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected long poll status %d: %s", res.StatusCode, body)
	}

	return body, nil
}

func (s *Session) advance(ts vk.Timestamp) {
	s.mu.Lock()
	s.cursor.TS = ts
	s.mu.Unlock()
}
