package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/refdata-labs/genomereg/internal/registry"
)

func setupRegistry(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "registry")
	if err := registry.Initialize(root, "main", "", io.Discard); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestOpen_AppendsToMainLog(t *testing.T) {
	root := setupRegistry(t)

	log, closeLog, err := Open(root, "register-genome")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	log.Debug("copied input", "file", "test.fa")
	closeLog()

	data, err := os.ReadFile(registry.MainLogPath(root))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"msg=\"copied input\"", "command=register-genome", "file=test.fa"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("main log %q does not contain %q", data, want)
		}
	}
}

func TestOpen_GetGenesHasOwnLog(t *testing.T) {
	root := setupRegistry(t)

	log, closeLog, err := Open(root, "get-genes")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	log.Debug("resolved gene", "id", "egfp")
	closeLog()

	data, err := os.ReadFile(registry.GetGenesLogPath(root))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "command=get-genes") {
		t.Errorf("get-genes log %q does not carry the command", data)
	}

	main, err := os.ReadFile(registry.MainLogPath(root))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(main), "resolved gene") {
		t.Error("retrieval record leaked into the main log")
	}
}

func TestOpen_SuccessiveCommandsAppend(t *testing.T) {
	root := setupRegistry(t)

	for _, command := range []string{"register-gene", "update-gene"} {
		log, closeLog, err := Open(root, command)
		if err != nil {
			t.Fatalf("Open(%s) error = %v", command, err)
		}
		log.Debug("ran")
		closeLog()
	}

	data, err := os.ReadFile(registry.MainLogPath(root))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"command=register-gene", "command=update-gene"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("main log %q does not contain %q", data, want)
		}
	}
}

func TestOpen_UninitializedRegistry(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "nowhere"), "register-gene")
	if err == nil {
		t.Fatal("expected error for an uninitialized registry, got nil")
	}
	if !strings.Contains(err.Error(), "initialized") {
		t.Errorf("error %q should ask about initialization", err)
	}
}

func TestTeeHandler_FansOutByLevel(t *testing.T) {
	var debugBuf, infoBuf bytes.Buffer
	tee := teeHandler{
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
	}
	log := slog.New(tee)

	log.Debug("to file only")
	log.Info("to both")

	if !strings.Contains(debugBuf.String(), "to file only") || !strings.Contains(debugBuf.String(), "to both") {
		t.Errorf("debug handler saw %q, want both records", debugBuf.String())
	}
	if strings.Contains(infoBuf.String(), "to file only") {
		t.Errorf("info handler saw a debug record: %q", infoBuf.String())
	}
	if !strings.Contains(infoBuf.String(), "to both") {
		t.Errorf("info handler missed the info record: %q", infoBuf.String())
	}
}

func TestTeeHandler_Enabled(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	infoOnly := teeHandler{
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}
	if infoOnly.Enabled(ctx, slog.LevelDebug) {
		t.Error("Enabled(debug) = true with no debug-level handler")
	}
	if !infoOnly.Enabled(ctx, slog.LevelInfo) {
		t.Error("Enabled(info) = false with an info-level handler")
	}
}

func TestTeeHandler_WithAttrs(t *testing.T) {
	var a, b bytes.Buffer
	tee := teeHandler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}
	log := slog.New(tee).With("command", "clean")

	log.Info("done")

	for name, buf := range map[string]*bytes.Buffer{"first": &a, "second": &b} {
		if !strings.Contains(buf.String(), "command=clean") {
			t.Errorf("%s handler lost the attr: %q", name, buf.String())
		}
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	if log.Enabled(context.Background(), slog.LevelError) {
		t.Error("Discard() logger should drop every record")
	}
	log.Info("dropped")
}
