package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "gophaccounts.AccountService"

// Full method names, as seen by interceptors in grpc.UnaryServerInfo.
const (
	LoginMethod        = "/" + ServiceName + "/Login"
	SignupMethod       = "/" + ServiceName + "/Signup"
	MeMethod           = "/" + ServiceName + "/Me"
	UpdateUserMethod   = "/" + ServiceName + "/UpdateUser"
	UpdateAvatarMethod = "/" + ServiceName + "/UpdateAvatar"
	ListUsersMethod    = "/" + ServiceName + "/ListUsers"
	DeleteUserMethod   = "/" + ServiceName + "/DeleteUser"
)

type AccountServiceServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Signup(context.Context, *SignupRequest) (*User, error)
	Me(context.Context, *MeRequest) (*User, error)
	UpdateUser(context.Context, *UpdateUserRequest) (*User, error)
	UpdateAvatar(context.Context, *UpdateAvatarRequest) (*User, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	DeleteUser(context.Context, *DeleteUserRequest) (*DeleteUserResponse, error)
}

func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&AccountServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(AccountServiceServer, context.Context, *Req) (Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AccountServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AccountServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var AccountServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: unaryHandler(LoginMethod, AccountServiceServer.Login)},
		{MethodName: "Signup", Handler: unaryHandler(SignupMethod, AccountServiceServer.Signup)},
		{MethodName: "Me", Handler: unaryHandler(MeMethod, AccountServiceServer.Me)},
		{MethodName: "UpdateUser", Handler: unaryHandler(UpdateUserMethod, AccountServiceServer.UpdateUser)},
		{MethodName: "UpdateAvatar", Handler: unaryHandler(UpdateAvatarMethod, AccountServiceServer.UpdateAvatar)},
		{MethodName: "ListUsers", Handler: unaryHandler(ListUsersMethod, AccountServiceServer.ListUsers)},
		{MethodName: "DeleteUser", Handler: unaryHandler(DeleteUserMethod, AccountServiceServer.DeleteUser)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/api/service.go",
}
