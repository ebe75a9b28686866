package relay

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName           = "relay.v1.Relay"
	ConnectFullMethodName = "/relay.v1.Relay/Connect"
)

// Stream is the client side of the Connect call.
type Stream = grpc.BidiStreamingClient[Request, Response]

// ServerStream is the server side of the Connect call.
type ServerStream = grpc.BidiStreamingServer[Request, Response]

type RelayClient interface {
	Connect(ctx context.Context, opts ...grpc.CallOption) (Stream, error)
}

type relayClient struct {
	cc grpc.ClientConnInterface
}

func NewRelayClient(cc grpc.ClientConnInterface) RelayClient {
	return &relayClient{cc: cc}
}

func (c *relayClient) Connect(ctx context.Context, opts ...grpc.CallOption) (Stream, error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], ConnectFullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[Request, Response]{ClientStream: stream}, nil
}

// RelayServer is implemented by relay backends. The bridge only needs the
// client; the server half exists so the protocol can be served in tests
// and by local stand-ins.
type RelayServer interface {
	Connect(ServerStream) error
}

func RegisterRelayServer(s grpc.ServiceRegistrar, srv RelayServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func connectHandler(srv any, stream grpc.ServerStream) error {
	return srv.(RelayServer).Connect(&grpc.GenericServerStream[Request, Response]{ServerStream: stream})
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RelayServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Connect",
			Handler:       connectHandler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "relay/v1/relay.proto",
}
