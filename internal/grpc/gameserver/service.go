package gameserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The session service speaks google.protobuf.Struct on the wire so clients
// need no generated stubs; the field layout of each message is documented on
// the Server methods.

// SessionServiceName is the fully qualified gRPC service name.
const SessionServiceName = "hexdominion.session.v1.SessionService"

const (
	methodCreateSession  = "/" + SessionServiceName + "/CreateSession"
	methodSubmitCommands = "/" + SessionServiceName + "/SubmitCommands"
	methodGetSnapshot    = "/" + SessionServiceName + "/GetSnapshot"
	methodCloseSession   = "/" + SessionServiceName + "/CloseSession"
	methodStreamEvents   = "/" + SessionServiceName + "/StreamEvents"
)

// SessionServiceServer is the server API of the session service.
type SessionServiceServer interface {
	CreateSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SubmitCommands(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSnapshot(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CloseSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StreamEvents(*structpb.Struct, SessionService_StreamEventsServer) error
}

// SessionService_StreamEventsServer is the server side of StreamEvents.
type SessionService_StreamEventsServer interface {
	Send(*structpb.Struct) error
	grpc.ServerStream
}

type sessionServiceStreamEventsServer struct {
	grpc.ServerStream
}

func (x *sessionServiceStreamEventsServer) Send(m *structpb.Struct) error {
	return x.ServerStream.SendMsg(m)
}

type unaryCall func(SessionServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SessionServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(SessionServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func streamEventsHandler(srv interface{}, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(SessionServiceServer).StreamEvents(in, &sessionServiceStreamEventsServer{stream})
}

// SessionService_ServiceDesc describes the session service for grpc.Server.
var SessionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: SessionServiceName,
	HandlerType: (*SessionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateSession",
			Handler:    unaryHandler(methodCreateSession, SessionServiceServer.CreateSession),
		},
		{
			MethodName: "SubmitCommands",
			Handler:    unaryHandler(methodSubmitCommands, SessionServiceServer.SubmitCommands),
		},
		{
			MethodName: "GetSnapshot",
			Handler:    unaryHandler(methodGetSnapshot, SessionServiceServer.GetSnapshot),
		},
		{
			MethodName: "CloseSession",
			Handler:    unaryHandler(methodCloseSession, SessionServiceServer.CloseSession),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamEvents",
			Handler:       streamEventsHandler,
			ServerStreams: true,
		},
	},
	Metadata: "hexdominion/session/v1/session.proto",
}

// RegisterSessionServiceServer registers srv on s.
func RegisterSessionServiceServer(s grpc.ServiceRegistrar, srv SessionServiceServer) {
	s.RegisterService(&SessionService_ServiceDesc, srv)
}

// SessionServiceClient calls the session service.
type SessionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSessionServiceClient(cc grpc.ClientConnInterface) *SessionServiceClient {
	return &SessionServiceClient{cc: cc}
}

func (c *SessionServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SessionServiceClient) CreateSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodCreateSession, in, opts...)
}

func (c *SessionServiceClient) SubmitCommands(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodSubmitCommands, in, opts...)
}

func (c *SessionServiceClient) GetSnapshot(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodGetSnapshot, in, opts...)
}

func (c *SessionServiceClient) CloseSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodCloseSession, in, opts...)
}

// SessionService_StreamEventsClient receives session events.
type SessionService_StreamEventsClient interface {
	Recv() (*structpb.Struct, error)
	grpc.ClientStream
}

type sessionServiceStreamEventsClient struct {
	grpc.ClientStream
}

func (x *sessionServiceStreamEventsClient) Recv() (*structpb.Struct, error) {
	m := new(structpb.Struct)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *SessionServiceClient) StreamEvents(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (SessionService_StreamEventsClient, error) {
	stream, err := c.cc.NewStream(ctx, &SessionService_ServiceDesc.Streams[0], methodStreamEvents, opts...)
	if err != nil {
		return nil, err
	}
	x := &sessionServiceStreamEventsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
