package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	grpcadapter "github.com/simaogato/wealthtrack/internal/adapter/grpc"
	"github.com/simaogato/wealthtrack/internal/config"
	"github.com/simaogato/wealthtrack/internal/report"
)

// remote holds the connection flags shared by every command
type remote struct {
	addr  string
	token string
	style string
	width int
	raw   bool
}

func newRemote(cfg *config.Config) remote {
	return remote{addr: "localhost:" + cfg.GRPCPort, token: cfg.APIToken}
}

func (r *remote) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.addr, "addr", r.addr, "Address of the wealthtrack server")
	f.StringVar(&r.token, "token", r.token, "API token (defaults to API_TOKEN)")
	f.StringVar(&r.style, "style", "", "Markdown style: dark, light, notty (defaults to terminal detection)")
	f.IntVar(&r.width, "width", 100, "Word wrap width of rendered reports")
	f.BoolVar(&r.raw, "raw", false, "Print markdown without rendering it")
}

// dial connects to the server; callers close the returned connection
func (r *remote) dial(ctx context.Context) (context.Context, *grpcadapter.Client, func(), error) {
	conn, err := grpc.NewClient(r.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to %s: %w", r.addr, err)
	}
	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", r.token)
	return ctx, grpcadapter.NewClient(conn), func() { _ = conn.Close() }, nil
}

func (r *remote) printMarkdown(md string) {
	if r.raw {
		fmt.Print(md)
		return
	}
	out, err := report.Render(md, r.style, r.width)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
