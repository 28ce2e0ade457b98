package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oaslint"
	"github.com/erraggy/oaslint/cmd/oaslint/commands"
)

// commandNames lists the commands suggestCommand may propose.
var commandNames = []string{"validate", "rules", "serve", "mcp", "version", "help"}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], commands.StdStreams())
	stop()
	os.Exit(code)
}

// run dispatches args to a command and returns the process exit code.
func run(ctx context.Context, args []string, std commands.Streams) int {
	if len(args) < 1 {
		printUsage(std.Err)
		return 1
	}

	var err error
	switch command := args[0]; command {
	case "version", "-v", "--version":
		commands.Writef(std.Out, "oaslint v%s\n", oaslint.Version())
		return 0
	case "help", "-h", "--help":
		printUsage(std.Out)
		return 0
	case "validate":
		err = commands.HandleValidate(ctx, args[1:], std)
	case "rules":
		err = commands.HandleRules(args[1:], std)
	case "serve":
		err = commands.HandleServe(ctx, args[1:], std)
	case "mcp":
		err = commands.HandleMCP(ctx, args[1:], std)
	default:
		commands.Writef(std.Err, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			commands.Writef(std.Err, "Did you mean '%s'?\n", s)
		}
		commands.Writef(std.Err, "\n")
		printUsage(std.Err)
		return 1
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, commands.ErrValidationFailed):
		return 1
	default:
		commands.Writef(std.Err, "Error: %v\n", err)
		return 1
	}
}

// suggestCommand returns the known command closest to input, or "" when
// none is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage(w io.Writer) {
	commands.Writef(w, `oaslint - OpenAPI 3.x validator and linter

Usage:
  oaslint <command> [options]

Commands:
  validate    Validate and lint an OpenAPI document
  rules       List the enabled lint rules
  serve       Serve the validator over HTTP
  mcp         Run an MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  oaslint validate openapi.yaml
  oaslint validate --lint-only --json openapi.yaml
  oaslint rules --applies-to operation
  oaslint serve --addr :8080

Run 'oaslint <command> --help' for more information on a command.
`)
}
