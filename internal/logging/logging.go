// Package logging opens the registry-scoped loggers. Every command appends
// debug-level records to a log file inside the registry, so the history of a
// shared registry travels with it; non-listing commands additionally report
// info-level records on stderr. Retrieval runs log to their own file because
// they run under pipeline service accounts.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/refdata-labs/genomereg/internal/registry"
)

// Open prepares the logger for one command invocation against the registry
// at root. The returned close function releases the log file; callers defer
// it for the life of the command.
func Open(root, command string) (*slog.Logger, func(), error) {
	logPath := registry.MainLogPath(root)
	if command == "get-genes" {
		logPath = registry.GetGenesLogPath(root)
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, registry.FilePerm)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file (is --registry-path an initialized registry?): %w", err)
	}

	fileHandler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	var handler slog.Handler = fileHandler
	// Listing commands keep stdout/stderr clean for scripting.
	if !strings.HasPrefix(command, "list-") {
		stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
		handler = teeHandler{fileHandler, stderrHandler}
	}

	log := slog.New(handler).With("command", command)
	log.Debug("command invoked", "argv", strings.Join(os.Args, " "))
	return log, func() { f.Close() }, nil
}

// Discard returns a logger that drops every record, for tests and for
// commands that run before a registry exists.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
