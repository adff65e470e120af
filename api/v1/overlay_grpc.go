package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const OverlayWidgetsServiceName = "overlay.v1.OverlayWidgets"

const (
	OverlayWidgets_GetAppAssessmentWidgetData_FullMethodName = "/overlay.v1.OverlayWidgets/GetAppAssessmentWidgetData"
	OverlayWidgets_GetTargetAppCostWidgetData_FullMethodName = "/overlay.v1.OverlayWidgets/GetTargetAppCostWidgetData"
	OverlayWidgets_GetFlowDiagram_FullMethodName             = "/overlay.v1.OverlayWidgets/GetFlowDiagram"
	OverlayWidgets_FindFlowDiagramsByEntity_FullMethodName   = "/overlay.v1.OverlayWidgets/FindFlowDiagramsByEntity"
	OverlayWidgets_CreateFlowDiagram_FullMethodName          = "/overlay.v1.OverlayWidgets/CreateFlowDiagram"
	OverlayWidgets_UpdateFlowDiagram_FullMethodName          = "/overlay.v1.OverlayWidgets/UpdateFlowDiagram"
)

// OverlayWidgetsClient is the client API for the OverlayWidgets service.
type OverlayWidgetsClient interface {
	GetAppAssessmentWidgetData(ctx context.Context, in *AssessmentWidgetRequest, opts ...grpc.CallOption) (*AssessmentWidgetResponse, error)
	GetTargetAppCostWidgetData(ctx context.Context, in *TargetCostWidgetRequest, opts ...grpc.CallOption) (*TargetCostWidgetResponse, error)
	GetFlowDiagram(ctx context.Context, in *GetFlowDiagramRequest, opts ...grpc.CallOption) (*FlowDiagramResponse, error)
	FindFlowDiagramsByEntity(ctx context.Context, in *FindFlowDiagramsByEntityRequest, opts ...grpc.CallOption) (*FlowDiagramsResponse, error)
	CreateFlowDiagram(ctx context.Context, in *CreateFlowDiagramRequest, opts ...grpc.CallOption) (*CreateFlowDiagramResponse, error)
	UpdateFlowDiagram(ctx context.Context, in *UpdateFlowDiagramRequest, opts ...grpc.CallOption) (*UpdateFlowDiagramResponse, error)
}

type overlayWidgetsClient struct {
	cc grpc.ClientConnInterface
}

func NewOverlayWidgetsClient(cc grpc.ClientConnInterface) OverlayWidgetsClient {
	return &overlayWidgetsClient{cc}
}

func (c *overlayWidgetsClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, callOpts...)
}

func (c *overlayWidgetsClient) GetAppAssessmentWidgetData(ctx context.Context, in *AssessmentWidgetRequest, opts ...grpc.CallOption) (*AssessmentWidgetResponse, error) {
	out := new(AssessmentWidgetResponse)
	if err := c.invoke(ctx, OverlayWidgets_GetAppAssessmentWidgetData_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *overlayWidgetsClient) GetTargetAppCostWidgetData(ctx context.Context, in *TargetCostWidgetRequest, opts ...grpc.CallOption) (*TargetCostWidgetResponse, error) {
	out := new(TargetCostWidgetResponse)
	if err := c.invoke(ctx, OverlayWidgets_GetTargetAppCostWidgetData_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *overlayWidgetsClient) GetFlowDiagram(ctx context.Context, in *GetFlowDiagramRequest, opts ...grpc.CallOption) (*FlowDiagramResponse, error) {
	out := new(FlowDiagramResponse)
	if err := c.invoke(ctx, OverlayWidgets_GetFlowDiagram_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *overlayWidgetsClient) FindFlowDiagramsByEntity(ctx context.Context, in *FindFlowDiagramsByEntityRequest, opts ...grpc.CallOption) (*FlowDiagramsResponse, error) {
	out := new(FlowDiagramsResponse)
	if err := c.invoke(ctx, OverlayWidgets_FindFlowDiagramsByEntity_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *overlayWidgetsClient) CreateFlowDiagram(ctx context.Context, in *CreateFlowDiagramRequest, opts ...grpc.CallOption) (*CreateFlowDiagramResponse, error) {
	out := new(CreateFlowDiagramResponse)
	if err := c.invoke(ctx, OverlayWidgets_CreateFlowDiagram_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *overlayWidgetsClient) UpdateFlowDiagram(ctx context.Context, in *UpdateFlowDiagramRequest, opts ...grpc.CallOption) (*UpdateFlowDiagramResponse, error) {
	out := new(UpdateFlowDiagramResponse)
	if err := c.invoke(ctx, OverlayWidgets_UpdateFlowDiagram_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// OverlayWidgetsServer is the server API for the OverlayWidgets service.
// Implementations must embed UnimplementedOverlayWidgetsServer.
type OverlayWidgetsServer interface {
	GetAppAssessmentWidgetData(context.Context, *AssessmentWidgetRequest) (*AssessmentWidgetResponse, error)
	GetTargetAppCostWidgetData(context.Context, *TargetCostWidgetRequest) (*TargetCostWidgetResponse, error)
	GetFlowDiagram(context.Context, *GetFlowDiagramRequest) (*FlowDiagramResponse, error)
	FindFlowDiagramsByEntity(context.Context, *FindFlowDiagramsByEntityRequest) (*FlowDiagramsResponse, error)
	CreateFlowDiagram(context.Context, *CreateFlowDiagramRequest) (*CreateFlowDiagramResponse, error)
	UpdateFlowDiagram(context.Context, *UpdateFlowDiagramRequest) (*UpdateFlowDiagramResponse, error)
	mustEmbedUnimplementedOverlayWidgetsServer()
}

type UnimplementedOverlayWidgetsServer struct{}

func (UnimplementedOverlayWidgetsServer) GetAppAssessmentWidgetData(context.Context, *AssessmentWidgetRequest) (*AssessmentWidgetResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAppAssessmentWidgetData not implemented")
}
func (UnimplementedOverlayWidgetsServer) GetTargetAppCostWidgetData(context.Context, *TargetCostWidgetRequest) (*TargetCostWidgetResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTargetAppCostWidgetData not implemented")
}
func (UnimplementedOverlayWidgetsServer) GetFlowDiagram(context.Context, *GetFlowDiagramRequest) (*FlowDiagramResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetFlowDiagram not implemented")
}
func (UnimplementedOverlayWidgetsServer) FindFlowDiagramsByEntity(context.Context, *FindFlowDiagramsByEntityRequest) (*FlowDiagramsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindFlowDiagramsByEntity not implemented")
}
func (UnimplementedOverlayWidgetsServer) CreateFlowDiagram(context.Context, *CreateFlowDiagramRequest) (*CreateFlowDiagramResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateFlowDiagram not implemented")
}
func (UnimplementedOverlayWidgetsServer) UpdateFlowDiagram(context.Context, *UpdateFlowDiagramRequest) (*UpdateFlowDiagramResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateFlowDiagram not implemented")
}
func (UnimplementedOverlayWidgetsServer) mustEmbedUnimplementedOverlayWidgetsServer() {}

func RegisterOverlayWidgetsServer(s grpc.ServiceRegistrar, srv OverlayWidgetsServer) {
	s.RegisterService(&OverlayWidgets_ServiceDesc, srv)
}

func _OverlayWidgets_GetAppAssessmentWidgetData_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AssessmentWidgetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlayWidgetsServer).GetAppAssessmentWidgetData(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: OverlayWidgets_GetAppAssessmentWidgetData_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OverlayWidgetsServer).GetAppAssessmentWidgetData(ctx, req.(*AssessmentWidgetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OverlayWidgets_GetTargetAppCostWidgetData_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(TargetCostWidgetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlayWidgetsServer).GetTargetAppCostWidgetData(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: OverlayWidgets_GetTargetAppCostWidgetData_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OverlayWidgetsServer).GetTargetAppCostWidgetData(ctx, req.(*TargetCostWidgetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OverlayWidgets_GetFlowDiagram_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetFlowDiagramRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlayWidgetsServer).GetFlowDiagram(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: OverlayWidgets_GetFlowDiagram_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OverlayWidgetsServer).GetFlowDiagram(ctx, req.(*GetFlowDiagramRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OverlayWidgets_FindFlowDiagramsByEntity_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(FindFlowDiagramsByEntityRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlayWidgetsServer).FindFlowDiagramsByEntity(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: OverlayWidgets_FindFlowDiagramsByEntity_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OverlayWidgetsServer).FindFlowDiagramsByEntity(ctx, req.(*FindFlowDiagramsByEntityRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OverlayWidgets_CreateFlowDiagram_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateFlowDiagramRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlayWidgetsServer).CreateFlowDiagram(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: OverlayWidgets_CreateFlowDiagram_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OverlayWidgetsServer).CreateFlowDiagram(ctx, req.(*CreateFlowDiagramRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OverlayWidgets_UpdateFlowDiagram_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UpdateFlowDiagramRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OverlayWidgetsServer).UpdateFlowDiagram(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: OverlayWidgets_UpdateFlowDiagram_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OverlayWidgetsServer).UpdateFlowDiagram(ctx, req.(*UpdateFlowDiagramRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// OverlayWidgets_ServiceDesc is the grpc.ServiceDesc for the OverlayWidgets service.
var OverlayWidgets_ServiceDesc = grpc.ServiceDesc{
	ServiceName: OverlayWidgetsServiceName,
	HandlerType: (*OverlayWidgetsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetAppAssessmentWidgetData", Handler: _OverlayWidgets_GetAppAssessmentWidgetData_Handler},
		{MethodName: "GetTargetAppCostWidgetData", Handler: _OverlayWidgets_GetTargetAppCostWidgetData_Handler},
		{MethodName: "GetFlowDiagram", Handler: _OverlayWidgets_GetFlowDiagram_Handler},
		{MethodName: "FindFlowDiagramsByEntity", Handler: _OverlayWidgets_FindFlowDiagramsByEntity_Handler},
		{MethodName: "CreateFlowDiagram", Handler: _OverlayWidgets_CreateFlowDiagram_Handler},
		{MethodName: "UpdateFlowDiagram", Handler: _OverlayWidgets_UpdateFlowDiagram_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "overlay/v1/overlay.proto",
}
