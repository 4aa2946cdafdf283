package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	grpcadapter "github.com/simaogato/wealthtrack/internal/adapter/grpc"
)

type importCmd struct {
	remote
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import an export file, replacing the areas it carries" }
func (*importCmd) Usage() string {
	return `wealthctl import <file>

  Imports a unified, investments or expenses export file. The file is
  rejected whole when any record is invalid.
`
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fail("import takes exactly one file")
		return subcommands.ExitUsageError
	}
	data, err := os.ReadFile(f.Arg(0))
	if err != nil {
		fail("read %s: %v", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	ctx, client, closeConn, err := c.dial(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer closeConn()

	resp, err := client.ImportDocument(ctx, &grpcadapter.ImportDocumentRequest{Data: data})
	if err != nil {
		fail("import: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %s file: %d entries, %d expenses (revision %d)\n", resp.Kind, resp.Entries, resp.Expenses, resp.Revision)
	return subcommands.ExitSuccess
}

type exportCmd struct {
	remote
	format string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the document as JSON" }
func (*exportCmd) Usage() string {
	return `wealthctl export [-format unified|investimentos] [-o <file>]

  Writes the current document to stdout or to a file.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.remote.SetFlags(f)
	f.StringVar(&c.format, "format", "unified", "Export layout: unified or investimentos")
	f.StringVar(&c.output, "o", "", "Output file (defaults to stdout)")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, client, closeConn, err := c.dial(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer closeConn()

	resp, err := client.ExportDocument(ctx, &grpcadapter.ExportDocumentRequest{Format: c.format})
	if err != nil {
		fail("export: %v", err)
		return subcommands.ExitFailure
	}

	if c.output == "" {
		fmt.Println(string(resp.Document))
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, resp.Document, 0o644); err != nil {
		fail("write %s: %v", c.output, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
