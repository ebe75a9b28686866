package relay

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// APIKeyHeader carries the static credential on the Connect call.
const APIKeyHeader = "x-api-key"

// Dial creates the client connection to the relay service. The connection is
// lazy: nothing is sent until Open is called.
func Dial(cfg *Config, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	creds := credentials.NewClientTLSFromCert(nil, "")
	if cfg.Insecure {
		creds = insecure.NewCredentials()
	}

	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, opts...)
	conn, err := grpc.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create relay client for %s: %w", cfg.Host, err)
	}
	return conn, nil
}

// Open starts the Connect stream with the API key in its metadata.
// The stream lives as long as ctx; there is no reconnection.
func Open(ctx context.Context, client RelayClient, apiKey string) (Stream, error) {
	ctx = metadata.AppendToOutgoingContext(ctx, APIKeyHeader, apiKey)
	stream, err := client.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open relay stream: %w", err)
	}
	return stream, nil
}
