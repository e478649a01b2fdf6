package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm/hxfrp"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "serve":
		if err := runServe(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("hxfrp version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hxfrp - reactive HTMX views for Go

Usage:
  hxfrp <command> [arguments]

Commands:
  serve      Serve the media search demo
  version    Print version
  help       Show this help

Options for serve:
  -addr      Listen address (default ":8080")
  -debug     Enable debug logging

Environment:
  HXFRP_KEY  Token signing key. A random key is used when unset.`)
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", ":8080", "listen address")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	key := []byte(os.Getenv("HXFRP_KEY"))
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return fmt.Errorf("generate key: %w", err)
		}
		slog.Warn("hxfrp: HXFRP_KEY not set, using a random key")
	}

	reg := hxfrp.NewRegistry(key, hxfrp.WithLogger(logger))
	defer reg.Close()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           routes(reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("hxfrp: serving demo", "addr", *addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		slog.Info("hxfrp: shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// routes serves the demo page on the root path only, so stray requests such
// as /favicon.ico do not mount a session.
func routes(reg *hxfrp.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(reg.Path(), reg.Handler())
	mux.Handle("GET /{$}", reg.Page(searchPage(catalog), layout))
	return mux
}
