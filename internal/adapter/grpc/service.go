package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "wealthtrack.v1.WealthTrackService"

// WealthTrackServiceServer is the server API of the wealthtrack service
type WealthTrackServiceServer interface {
	AddEntry(context.Context, *AddEntryRequest) (*EntryResponse, error)
	UpdateEntry(context.Context, *UpdateEntryRequest) (*EntryResponse, error)
	RemoveEntry(context.Context, *RemoveEntryRequest) (*RemoveEntryResponse, error)
	LogExpense(context.Context, *LogExpenseRequest) (*ExpenseResponse, error)
	UpdateExpense(context.Context, *UpdateExpenseRequest) (*ExpenseResponse, error)
	RemoveExpense(context.Context, *RemoveExpenseRequest) (*RemoveExpenseResponse, error)
	GetInvestmentOverview(context.Context, *GetInvestmentOverviewRequest) (*GetInvestmentOverviewResponse, error)
	GetExpenseOverview(context.Context, *GetExpenseOverviewRequest) (*GetExpenseOverviewResponse, error)
	Simulate(context.Context, *SimulateRequest) (*SimulateResponse, error)
	SaveProjectionForm(context.Context, *SaveProjectionFormRequest) (*SaveProjectionFormResponse, error)
	ImportDocument(context.Context, *ImportDocumentRequest) (*ImportDocumentResponse, error)
	ExportDocument(context.Context, *ExportDocumentRequest) (*ExportDocumentResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WealthTrackServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("AddEntry", WealthTrackServiceServer.AddEntry),
		unary("UpdateEntry", WealthTrackServiceServer.UpdateEntry),
		unary("RemoveEntry", WealthTrackServiceServer.RemoveEntry),
		unary("LogExpense", WealthTrackServiceServer.LogExpense),
		unary("UpdateExpense", WealthTrackServiceServer.UpdateExpense),
		unary("RemoveExpense", WealthTrackServiceServer.RemoveExpense),
		unary("GetInvestmentOverview", WealthTrackServiceServer.GetInvestmentOverview),
		unary("GetExpenseOverview", WealthTrackServiceServer.GetExpenseOverview),
		unary("Simulate", WealthTrackServiceServer.Simulate),
		unary("SaveProjectionForm", WealthTrackServiceServer.SaveProjectionForm),
		unary("ImportDocument", WealthTrackServiceServer.ImportDocument),
		unary("ExportDocument", WealthTrackServiceServer.ExportDocument),
	},
	Metadata: "wealthtrack/v1/wealthtrack.json",
}

// RegisterWealthTrackServiceServer registers srv on s
func RegisterWealthTrackServiceServer(s grpc.ServiceRegistrar, srv WealthTrackServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func unary[Req, Resp any](name string, call func(WealthTrackServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(WealthTrackServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(WealthTrackServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Client calls the wealthtrack service over a client connection
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a new Client instance
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func invoke[Resp any](ctx context.Context, c *Client, name string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.conn.Invoke(ctx, fullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddEntry(ctx context.Context, in *AddEntryRequest, opts ...grpc.CallOption) (*EntryResponse, error) {
	return invoke[EntryResponse](ctx, c, "AddEntry", in, opts)
}

func (c *Client) UpdateEntry(ctx context.Context, in *UpdateEntryRequest, opts ...grpc.CallOption) (*EntryResponse, error) {
	return invoke[EntryResponse](ctx, c, "UpdateEntry", in, opts)
}

func (c *Client) RemoveEntry(ctx context.Context, in *RemoveEntryRequest, opts ...grpc.CallOption) (*RemoveEntryResponse, error) {
	return invoke[RemoveEntryResponse](ctx, c, "RemoveEntry", in, opts)
}

func (c *Client) LogExpense(ctx context.Context, in *LogExpenseRequest, opts ...grpc.CallOption) (*ExpenseResponse, error) {
	return invoke[ExpenseResponse](ctx, c, "LogExpense", in, opts)
}

func (c *Client) UpdateExpense(ctx context.Context, in *UpdateExpenseRequest, opts ...grpc.CallOption) (*ExpenseResponse, error) {
	return invoke[ExpenseResponse](ctx, c, "UpdateExpense", in, opts)
}

func (c *Client) RemoveExpense(ctx context.Context, in *RemoveExpenseRequest, opts ...grpc.CallOption) (*RemoveExpenseResponse, error) {
	return invoke[RemoveExpenseResponse](ctx, c, "RemoveExpense", in, opts)
}

func (c *Client) GetInvestmentOverview(ctx context.Context, in *GetInvestmentOverviewRequest, opts ...grpc.CallOption) (*GetInvestmentOverviewResponse, error) {
	return invoke[GetInvestmentOverviewResponse](ctx, c, "GetInvestmentOverview", in, opts)
}

func (c *Client) GetExpenseOverview(ctx context.Context, in *GetExpenseOverviewRequest, opts ...grpc.CallOption) (*GetExpenseOverviewResponse, error) {
	return invoke[GetExpenseOverviewResponse](ctx, c, "GetExpenseOverview", in, opts)
}

func (c *Client) Simulate(ctx context.Context, in *SimulateRequest, opts ...grpc.CallOption) (*SimulateResponse, error) {
	return invoke[SimulateResponse](ctx, c, "Simulate", in, opts)
}

func (c *Client) SaveProjectionForm(ctx context.Context, in *SaveProjectionFormRequest, opts ...grpc.CallOption) (*SaveProjectionFormResponse, error) {
	return invoke[SaveProjectionFormResponse](ctx, c, "SaveProjectionForm", in, opts)
}

func (c *Client) ImportDocument(ctx context.Context, in *ImportDocumentRequest, opts ...grpc.CallOption) (*ImportDocumentResponse, error) {
	return invoke[ImportDocumentResponse](ctx, c, "ImportDocument", in, opts)
}

func (c *Client) ExportDocument(ctx context.Context, in *ExportDocumentRequest, opts ...grpc.CallOption) (*ExportDocumentResponse, error) {
	return invoke[ExportDocumentResponse](ctx, c, "ExportDocument", in, opts)
}
