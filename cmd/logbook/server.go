package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/logbook/internal/httpserver"
	"github.com/tinytelemetry/logbook/internal/logquery"
	"github.com/tinytelemetry/logbook/internal/sqlstore"
	"golang.org/x/sync/errgroup"
)

// runServer opens the store and serves the HTTP API until a signal arrives.
func runServer(cfg appConfig) error {
	cleanupLogger := configureRuntimeLogger()
	defer cleanupLogger()

	store, err := sqlstore.Open(storeConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to initialize %s store: %w", cfg.DBDriver, err)
	}
	defer store.Close()
	store.SetMaxConcurrentQueries(cfg.MaxConcurrentReads)

	apiServer := httpserver.NewServer(cfg.APIAddr, logquery.New(store), httpserver.Options{
		CORSOrigins:          cfg.CORSOrigins,
		CORSAllowCredentials: cfg.CORSCredentials,
		Health:               store,
		Driver:               store.Dialect().Name,
	})
	if err := apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	log.Printf("server: listening on %s (driver %s)", apiServer.Addr(), cfg.DBDriver)

	// Set up context and signal handling before errgroup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
			return
		}
		fmt.Println("\nShutting down gracefully... (press Ctrl+C again to force)")
		cancel()

		deadline := time.NewTimer(10 * time.Second)
		defer deadline.Stop()

		select {
		case <-sigCh:
			fmt.Println("\nForce shutdown.")
		case <-deadline.C:
			fmt.Println("Shutdown timed out, forcing exit.")
		}
		os.Exit(1)
	}()

	printStartupBanner(cfg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return apiServer.Stop()
	})

	if err := g.Wait(); err != nil {
		log.Printf("server: shutdown: %v", err)
		return err
	}
	log.Printf("server: stopped")
	return nil
}

func configureRuntimeLogger() func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	home, err := os.UserHomeDir()
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	logDir := filepath.Join(home, ".local", "state", "logbook")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	logPath := filepath.Join(logDir, "logbook.log")
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}
}

func printStartupBanner(cfg appConfig) {
	fmt.Println(renderStartupBanner(cfg))
}

func renderStartupBanner(cfg appConfig) string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	logo := cyan.Bold(true).Render(`
    ╦  ╔═╗╔═╗╔╗ ╔═╗╔═╗╦╔═
    ║  ║ ║║ ╦╠╩╗║ ║║ ║╠╩╗
    ╩═╝╚═╝╚═╝╚═╝╚═╝╚═╝╩ ╩`)

	separator := dim.Render("    ─────────────────────────────────")
	lines := []string{
		"",
		logo,
		"    " + dim.Render("v"+version),
		"",
		separator,
		"",
		bold.Render("    Gateway"),
		"",
		fmt.Sprintf("    %s  HTTP API       %s", check, cyan.Render("http://"+cfg.APIAddr)),
		fmt.Sprintf("    %s  OpenAPI        %s", check, dim.Render("/api-docs/openapi.json")),
		fmt.Sprintf("    %s  Metrics        %s", check, dim.Render("/metrics")),
	}
	if len(cfg.CORSOrigins) > 0 {
		lines = append(lines, fmt.Sprintf("    %s  CORS           %s", check, dim.Render(strings.Join(cfg.CORSOrigins, ", "))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  CORS           %s", dot, dim.Render("disabled")))
	}

	lines = append(lines, "", bold.Render("    Storage"), "")
	lines = append(lines, fmt.Sprintf("    %s  Driver         %s", check, cyan.Render(cfg.DBDriver)))
	lines = append(lines, fmt.Sprintf("    %s  Location       %s", check, dim.Render(storageLocation(cfg))))

	lines = append(lines, "", bold.Render("    Config"), "")
	if cfg.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", check, dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", dot, dim.Render("default (no file)")))
	}

	lines = append(lines,
		"",
		separator,
		"",
		"    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"),
		"",
	)
	return strings.Join(lines, "\n")
}

func storageLocation(cfg appConfig) string {
	switch {
	case cfg.DBDriver == sqlstore.Postgres.Name:
		return "postgres (dsn configured)"
	case cfg.DBPath == memoryPath:
		return "in-memory"
	}
	return shortenPath(cfg.DBPath)
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
