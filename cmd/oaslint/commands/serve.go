package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/erraggy/oaslint/engine"
	"github.com/erraggy/oaslint/internal/config"
	"github.com/erraggy/oaslint/internal/httpserver"
)

// ServeFlags contains flags for the serve command
type ServeFlags struct {
	Addr        string
	ConfigPath  string
	MaxBodySize int64
	Debug       bool
}

// SetupServeFlags creates and configures a FlagSet for the serve command.
func SetupServeFlags() (*flag.FlagSet, *ServeFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &ServeFlags{}

	fs.StringVar(&flags.Addr, "addr", httpserver.DefaultAddr, "listen address")
	fs.StringVar(&flags.ConfigPath, "config", "", "configuration file (default: .oaslint.yaml in the working directory, if present)")
	fs.Int64Var(&flags.MaxBodySize, "max-body-size", engine.DefaultMaxInputSize, "maximum request document size in bytes")
	fs.BoolVar(&flags.Debug, "debug", false, "log debug diagnostics and run gin in debug mode")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oaslint serve [flags]\n\n")
		Writef(fs.Output(), "Serve the validator over HTTP until interrupted.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nEndpoints:\n")
		Writef(fs.Output(), "  POST /v1/validate[?mode=schema-only|lint-only]  check the request body\n")
		Writef(fs.Output(), "  GET  /v1/rules                                  list enabled rules\n")
		Writef(fs.Output(), "  GET  /healthz                                   liveness probe\n")
	}

	return fs, flags
}

// HandleServe executes the serve command. It blocks until ctx is cancelled.
func HandleServe(ctx context.Context, args []string, std Streams) error {
	fs, flags := SetupServeFlags()
	fs.SetOutput(std.Err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("serve command takes no arguments")
	}

	settings, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if flags.Debug {
		level = slog.LevelDebug
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := slog.New(slog.NewJSONHandler(std.Err, &slog.HandlerOptions{Level: level}))

	srv, err := httpserver.New(httpserver.Config{
		Addr:        flags.Addr,
		Options:     settings.Options(),
		MaxBodySize: flags.MaxBodySize,
		Logger:      engine.NewSlogAdapter(logger),
	})
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}
