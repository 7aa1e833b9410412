// CLAUDE:SUMMARY CLI entry point for protoboard — serves the prototype editor over HTTP (page, JSON API, optional MCP), or prints the serialized seed and exits.
// Command protoboard serves the browser prototype editor.
//
// Usage:
//
//	protoboard                               # serve the built-in seed on :8050
//	protoboard -config protoboard.yaml       # run with config file
//	protoboard -addr :9000 -journal data/journal.db
//	protoboard -dump                         # print the saved form of the seed and exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/protoboard/editor"
	"github.com/hazyhaar/protoboard/serialize"
)

func main() {
	configPath := flag.String("config", "", "path to protoboard.yaml config file")
	addr := flag.String("addr", "", "listen address (default :8050, or :$PORT)")
	journalPath := flag.String("journal", "", "SQLite file for the action journal (default in-memory)")
	enableMCP := flag.Bool("mcp", false, "mount the MCP endpoint at /mcp")
	dump := flag.Bool("dump", false, "print the serialized seed and exit")
	logLevel := flag.String("log-level", env("LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := resolveConfig(*configPath, *addr, *journalPath, *enableMCP)
	if err != nil {
		logger.Error("protoboard: config", "error", err)
		os.Exit(1)
	}

	if *dump {
		ed, err := editor.New(cfg, logger)
		if err != nil {
			logger.Error("protoboard: init", "error", err)
			os.Exit(1)
		}
		fmt.Println(serialize.Serialize(ed.State().Elements))
		ed.Close()
		return
	}

	if err := run(ctx, logger, cfg); err != nil {
		logger.Error("protoboard: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *editor.Config) error {
	ed, err := editor.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer ed.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           ed.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("protoboard: listening", "addr", cfg.Addr, "journal", cfg.JournalPath, "mcp", cfg.MCP)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("protoboard: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("protoboard: shutdown", "error", err)
	}
	logger.Info("protoboard: stopped")
	return nil
}

// resolveConfig loads the config file, if any, then applies flags and the
// PORT environment variable. Flags win over the file.
func resolveConfig(configPath, addr, journalPath string, enableMCP bool) (*editor.Config, error) {
	cfg := &editor.Config{}
	if configPath != "" {
		var err error
		if cfg, err = editor.LoadConfigFile(configPath); err != nil {
			return nil, err
		}
	}
	switch {
	case addr != "":
		cfg.Addr = addr
	case cfg.Addr == "" && os.Getenv("PORT") != "":
		cfg.Addr = ":" + os.Getenv("PORT")
	}
	if journalPath != "" {
		cfg.JournalPath = journalPath
	}
	if enableMCP {
		cfg.MCP = true
	}
	return cfg, nil
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
