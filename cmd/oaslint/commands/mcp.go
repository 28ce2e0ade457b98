package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/oaslint/internal/config"
	"github.com/erraggy/oaslint/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	configPath := fs.String("config", "", "configuration file (default: .oaslint.yaml in the working directory, if present)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oaslint mcp [flags]\n\n")
		Writef(fs.Output(), "Run an MCP server over stdio exposing the validate and list_rules tools.\n")
		Writef(fs.Output(), "Tool defaults are read from OASLINT_MCP_* environment variables.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}
	return fs, configPath
}

// HandleMCP executes the mcp command. It blocks until the client disconnects
// or ctx is cancelled.
func HandleMCP(ctx context.Context, args []string, std Streams) error {
	fs, configPath := SetupMCPFlags()
	fs.SetOutput(std.Err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	return mcpserver.Run(ctx, settings.Options()...)
}
