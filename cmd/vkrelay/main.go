package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unrolled/render"
	"golang.org/x/sync/errgroup"

	"github.com/vladislavprovich/vk-relay/internal/dispatcher"
	"github.com/vladislavprovich/vk-relay/internal/handler"
	"github.com/vladislavprovich/vk-relay/internal/longpoll"
	"github.com/vladislavprovich/vk-relay/internal/service"
	"github.com/vladislavprovich/vk-relay/internal/worker"
	"github.com/vladislavprovich/vk-relay/pkg/cache"
	"github.com/vladislavprovich/vk-relay/pkg/client/relay"
	"github.com/vladislavprovich/vk-relay/pkg/client/vk"
	"github.com/vladislavprovich/vk-relay/pkg/logger"
	"github.com/vladislavprovich/vk-relay/pkg/tracing"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := initConfig(ctx)
	appLogger, err := logger.New(ctx, cfg.Logger)
	if err != nil {
		log.Fatal(err)
	}

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		appLogger.ErrorContext(ctx, "failed to initialize tracing", slog.Any("error", err))
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			appLogger.ErrorContext(shutdownCtx, "tracing shutdown error", slog.Any("error", err))
		}
	}()

	if err = serve(ctx, appLogger, cfg); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.ErrorContext(ctx, "relay stopped", slog.Any("error", err))
		return 1
	}

	appLogger.InfoContext(ctx, "relay shutdown")
	return 0
}

func serve(ctx context.Context, appLogger *logger.Logger, cfg *Config) error {
	httpClient := &http.Client{
		Timeout: cfg.VK.HTTPTimeout,
	}
	vkClient := initBasicClient(ctx, appLogger, httpClient, cfg)
	authorCache := cache.NewMemoryService()
	relayService := initService(ctx, appLogger, vkClient, authorCache, cfg)

	conn, err := relay.Dial(cfg.Relay)
	if err != nil {
		return err
	}
	defer conn.Close()

	bridge := worker.NewBridge(
		appLogger.Component("bridge"),
		relayService,
		relay.NewRelayClient(conn),
		cfg.Relay.APIKey,
		*cfg.Bridge,
	)
	updateDispatcher := dispatcher.New(appLogger.Component("dispatcher"), bridge)
	session := longpoll.NewSession(appLogger.Component("longpoll"), vkClient, httpClient, longpoll.Config{
		GroupID: cfg.VK.GroupID,
		Wait:    cfg.VK.LongPollWait,
	})

	serviceHandler := handler.NewServiceHandler(
		session,
		bridge,
		updateDispatcher,
		authorCache,
		appLogger.Component("handler"),
		cfg.Server,
		render.New(),
	)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler.NewRouter(serviceHandler, appLogger.Logger, cfg.Server),
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return session.Run(gctx, updateDispatcher)
	})
	g.Go(func() error {
		return bridge.Run(gctx)
	})
	g.Go(func() error {
		appLogger.InfoContext(gctx, "Server start. Listening on port", slog.String("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.ErrorContext(shutdownCtx, "Server shutdown error", slog.Any("error", err))
		}
		return nil
	})

	return g.Wait()
}

func initConfig(ctx context.Context) *Config {
	cfg, err := LoadConfig(ctx)
	if err != nil {
		log.Fatalf("config load error %s", err)
	}

	return cfg
}

func initBasicClient(
	ctx context.Context,
	appLogger *logger.Logger,
	httpClient *http.Client,
	cfg *Config,
) *vk.BasicClient {
	appLogger.InfoContext(ctx, "initializing vk client")

	return vk.NewBasicClient(httpClient, cfg.VK, appLogger.Component("vk"))
}

func initService(
	ctx context.Context,
	appLogger *logger.Logger,
	client vk.Client,
	authorCache cache.Service,
	cfg *Config,
) *service.Service {
	appLogger.InfoContext(ctx, "initializing service")

	return service.NewRelayService(ctx, appLogger.Component("service"), client, authorCache, service.Config{
		PeerID:         cfg.VK.RelayPeerID,
		AuthorCacheTTL: cfg.VK.AuthorCacheTTL,
	})
}
