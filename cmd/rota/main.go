// ABOUTME: Entry point for the rota scheduling server and terminal panels.
// ABOUTME: Wires together store, auth, stream hub, API handlers, and panel CLI commands.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/2389/rota/internal/apiclient"
	"github.com/2389/rota/internal/auth"
	"github.com/2389/rota/internal/availability"
	"github.com/2389/rota/internal/events"
	"github.com/2389/rota/internal/holidays"
	"github.com/2389/rota/internal/logging"
	"github.com/2389/rota/internal/panel"
	"github.com/2389/rota/internal/schedule"
	"github.com/2389/rota/internal/seed"
	"github.com/2389/rota/internal/store"
	"github.com/2389/rota/internal/stream"
	"github.com/2389/rota/internal/suite"
)

var (
	port   string
	dbPath string

	panelMonth  string
	panelDays   int
	panelFollow bool
	panelEvents bool
	panelTUI    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rota",
		Short: "Rota - team scheduling server and terminal panels",
		Long: `Rota is a team scheduling toolkit for development and testing.

It bundles:
  • A fake scheduling API server (availability slots, calendar events)
  • Terminal panels for availability rollups and holiday calendars
  • A live update stream so panels refresh as data changes
  • AI-powered realistic seed data generation

Quick Start:
  rota seed             # Generate test data
  rota serve            # Start server on port 9000
  rota panel holidays   # Render this month's holiday calendar
  rota reset            # Wipe and reseed database`,
	}

	// Calculate default database path once (not per-command)
	defaultDBPath := getDefaultDBPath()

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the rota HTTP server on the specified port.

The server provides:
  • Availability API at /v1/availability
  • Calendar events API at /v1/events
  • Live update stream at /v1/stream (WebSocket)
  • Health check at http://localhost:PORT/healthz

Authentication:
  Use Bearer tokens in the format: Bearer user:USERNAME
  Example: curl -H "Authorization: Bearer user:me" http://localhost:9000/v1/availability?start=2026-03-01&end=2026-03-31

Environment Variables:
  ROTA_PORT         Server port (default: 9000)
  ROTA_DB_PATH      Database path
  OPENAI_API_KEY    Enable AI-powered seed data`,
		RunE: runServe,
	}
	serveCmd.Flags().StringVarP(&port, "port", "p", getEnv("ROTA_PORT", "9000"), "Port to listen on")
	serveCmd.Flags().StringVarP(&dbPath, "db", "d", defaultDBPath, "Database path")

	seedCmd := &cobra.Command{
		Use:   "seed [size]",
		Short: "Seed the database with test data",
		Long: `Seed the database with realistic scheduling test data.

AI-Powered Generation:
  Set OPENAI_API_KEY to use AI for generating realistic members, slots, and events.
  Falls back to static test data if no API key is provided.

Usage:
  rota seed             # Seed at medium size
  rota seed small       # 3 members, a few slots each
  rota seed large       # 10 members, a busy two weeks

Note: Seed is not idempotent. Use 'rota reset' to clear data before reseeding.`,
		RunE: runSeed,
		Args: cobra.MaximumNArgs(1),
	}
	seedCmd.Flags().StringVarP(&dbPath, "db", "d", defaultDBPath, "Database path")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the database (wipe and reseed)",
		Long: `Delete the database file and create a fresh one with new test data.

This command:
  1. Deletes the existing database file
  2. Creates a new empty database
  3. Seeds it with fresh medium-sized test data

Warning: This permanently deletes all data in the database!`,
		RunE: runReset,
	}
	resetCmd.Flags().StringVarP(&dbPath, "db", "d", defaultDBPath, "Database path")

	panelCmd := &cobra.Command{
		Use:   "panel",
		Short: "Render terminal panels",
		Long: `Render scheduling panels in the terminal.

Panels:
  rota panel availability   # Per-member availability rollup table
  rota panel holidays       # Month calendar with holidays marked

Use --tui for an interactive view, --follow to refresh on live updates.

Environment Variables:
  ROTA_API_URL          Server base URL (default: http://localhost:9000)
  ROTA_TOKEN            Bearer token (default: user:default)
  ROTA_EXTRA_HOLIDAYS   Extra holidays as date=name pairs, comma separated`,
	}

	availabilityCmd := &cobra.Command{
		Use:   "availability",
		Short: "Show the availability rollup panel",
		RunE:  runAvailabilityPanel,
	}
	availabilityCmd.Flags().IntVar(&panelDays, "days", 14, "Window length in days, starting today")
	availabilityCmd.Flags().BoolVar(&panelEvents, "events", false, "Include the calendar event strip")
	availabilityCmd.Flags().BoolVar(&panelFollow, "follow", false, "Re-render when the server broadcasts changes")
	availabilityCmd.Flags().BoolVar(&panelTUI, "tui", false, "Interactive full-screen view")

	holidaysCmd := &cobra.Command{
		Use:   "holidays",
		Short: "Show the holiday calendar panel",
		RunE:  runHolidayPanel,
	}
	holidaysCmd.Flags().StringVar(&panelMonth, "month", "", "Month to render as YYYY-MM (default: current)")

	panelCmd.AddCommand(availabilityCmd, holidaysCmd)

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Run the built-in check suite",
		Long: `Run the built-in property and behavior checks.

The suite exercises the generators, the scheduling windows, the overview
rollups, and the client surface against stubbed data. The command exits
non-zero when any check fails, so it can gate CI.`,
		RunE: runCheck,
	}

	rootCmd.AddCommand(serveCmd, seedCmd, resetCmd, panelCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// validateAndCleanDBPath validates and cleans a database path.
// Handles Unix/Linux, macOS, and Windows paths (including UNC and drive letters).
func validateAndCleanDBPath(path string) (string, error) {
	cleanPath := strings.TrimSpace(path)
	cleanPath = filepath.Clean(cleanPath)

	// Reject empty and root-like paths
	if cleanPath == "" || cleanPath == "." || cleanPath == "/" {
		return "", fmt.Errorf("database path cannot be empty, '.', or '/'")
	}

	// Windows: reject bare drive letters (e.g., "C:", "D:")
	if runtime.GOOS == "windows" && len(cleanPath) == 2 && cleanPath[1] == ':' {
		return "", fmt.Errorf("database path cannot be a bare drive letter")
	}

	// Check for path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return "", fmt.Errorf("database path cannot contain '..'")
	}

	// Reject known problematic patterns
	badPatterns := []string{
		".git",
		".svn",
		"node_modules",
		".env",
		"credentials",
		"secret",
	}
	lowerPath := strings.ToLower(cleanPath)
	for _, pattern := range badPatterns {
		if strings.Contains(lowerPath, pattern) {
			return "", fmt.Errorf("database path cannot contain '%s' directory", pattern)
		}
	}

	return cleanPath, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	var err error
	dbPath, err = validateAndCleanDBPath(dbPath)
	if err != nil {
		return err
	}

	srv, hub, err := newServer(dbPath)
	if err != nil {
		return err
	}
	go hub.Run()
	defer hub.Stop()

	addr := ":" + port
	log.Printf("Rota server listening on %s", addr)
	log.Printf("Database: %s", dbPath)
	return http.ListenAndServe(addr, srv)
}

func newServer(dbPath string) (http.Handler, *stream.Hub, error) {
	s, err := store.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	hub := stream.NewHub()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(logging.Middleware(s))
	r.Use(auth.Middleware)

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	// Favicon
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	availability.NewHandlers(s, hub).RegisterRoutes(r)
	events.NewHandlers(s, hub).RegisterRoutes(r)
	r.Get("/v1/stream", hub.Handler)

	return r, hub, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	var err error
	dbPath, err = validateAndCleanDBPath(dbPath)
	if err != nil {
		return err
	}

	size := seed.SizeMedium
	if len(args) > 0 {
		switch seed.Size(args[0]) {
		case seed.SizeSmall, seed.SizeMedium, seed.SizeLarge:
			size = seed.Size(args[0])
		default:
			return fmt.Errorf("unknown size %q (want small, medium, or large)", args[0])
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	return seedData(s, size)
}

func runReset(cmd *cobra.Command, args []string) error {
	var err error
	dbPath, err = validateAndCleanDBPath(dbPath)
	if err != nil {
		return err
	}

	// Remove existing database - ignore if file doesn't exist
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing database: %w", err)
	}

	s, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	return seedData(s, seed.SizeMedium)
}

func seedData(s *store.Store, size seed.Size) error {
	log.Printf("Seeding database with %s test data...", size)

	gen := seed.NewGenerator()
	data, err := gen.Generate(context.Background(), size)
	if err != nil {
		return fmt.Errorf("failed to generate seed data: %w", err)
	}

	total, err := seed.Apply(s, data)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			log.Println("Note: Database already contains seed data. Use 'rota reset' to clear and reseed.")
		}
		return err
	}

	log.Printf("%s", data.Summary())
	log.Printf("Seeding complete! Created %d records", total)
	return nil
}

func runAvailabilityPanel(cmd *cobra.Command, args []string) error {
	client := apiclient.New(getEnv("ROTA_API_URL", "http://localhost:9000"), getEnv("ROTA_TOKEN", "user:default"))
	window := schedule.DayWindow(time.Now(), panelDays)

	if panelTUI {
		manager := holidays.NewManager()
		notices, err := subscribeNotices(cmd.Context())
		if err != nil {
			return err
		}
		return panel.Run(cmd.Context(), client, manager, window, notices)
	}

	p := panel.NewAvailabilityPanel(client, panelEvents)
	if err := p.RenderPlain(cmd.Context(), os.Stdout, window); err != nil {
		return err
	}
	if !panelFollow {
		return nil
	}

	notices, err := subscribeNotices(cmd.Context())
	if err != nil {
		return err
	}
	for range notices {
		fmt.Fprintln(os.Stdout)
		if err := p.RenderPlain(cmd.Context(), os.Stdout, window); err != nil {
			return err
		}
	}
	return nil
}

func runHolidayPanel(cmd *cobra.Command, args []string) error {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if panelMonth != "" {
		parsed, err := time.Parse("2006-01", panelMonth)
		if err != nil {
			return fmt.Errorf("invalid --month %q (want YYYY-MM): %w", panelMonth, err)
		}
		year, month = parsed.Year(), parsed.Month()
	}

	manager := holidays.NewManager()
	return panel.NewHolidayPanel(manager).Render(os.Stdout, year, month)
}

func runCheck(cmd *cobra.Command, args []string) error {
	runner := suite.Run(os.Stdout)
	fmt.Println()
	fmt.Println(runner.Summary())
	if runner.Failures() > 0 {
		return fmt.Errorf("%d checks failed", runner.Failures())
	}
	return nil
}

func subscribeNotices(ctx context.Context) (<-chan stream.Notice, error) {
	base := getEnv("ROTA_API_URL", "http://localhost:9000")
	notices, err := stream.Subscribe(ctx, base+"/v1/stream")
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to update stream: %w", err)
	}
	return notices, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getDefaultDBPath returns the default database path following XDG Base Directory spec
// Priority: ROTA_DB_PATH env var > ./rota.db (backwards compat) > XDG_DATA_HOME/rota/rota.db
func getDefaultDBPath() string {
	// 1. Check environment variable first
	if envPath := os.Getenv("ROTA_DB_PATH"); envPath != "" {
		// Trim whitespace and clean path
		envPath = strings.TrimSpace(envPath)
		envPath = filepath.Clean(envPath)
		if envPath == "" || envPath == "." {
			log.Printf("Warning: ROTA_DB_PATH is invalid (empty or '.'), using default path")
		} else {
			return envPath
		}
	}

	// 2. Check for existing ./rota.db (backwards compatibility)
	cwdPath := "./rota.db"
	if _, err := os.Stat(cwdPath); err == nil {
		return cwdPath
	}

	// 3. Use XDG Base Directory spec (or Windows equivalent)
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil || homeDir == "" || homeDir == "/" {
			// Fallback to current directory if we can't get valid home dir
			log.Printf("Warning: Could not determine valid home directory (%q): %v, using ./rota.db", homeDir, err)
			return cwdPath
		}

		// Use platform-appropriate data directory
		// Windows: %LOCALAPPDATA% or ~/AppData/Local
		// Unix/Linux/macOS: ~/.local/share (XDG spec)
		if runtime.GOOS == "windows" {
			dataHome = os.Getenv("LOCALAPPDATA")
			if dataHome == "" {
				dataHome = filepath.Join(homeDir, "AppData", "Local")
			}
		} else {
			// Unix/Linux/macOS - XDG Base Directory spec
			dataHome = filepath.Join(homeDir, ".local", "share")
		}
	}

	rotaDataDir := filepath.Join(dataHome, "rota")
	xdgDBPath := filepath.Join(rotaDataDir, "rota.db")

	// Create the directory if it doesn't exist
	if err := os.MkdirAll(rotaDataDir, 0755); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v, using ./rota.db", rotaDataDir, err)
		return cwdPath
	}

	// Verify we can write to the directory
	testFile := filepath.Join(rotaDataDir, ".write-test")
	if f, err := os.Create(testFile); err != nil {
		log.Printf("Warning: Cannot write to data directory %s: %v, using ./rota.db", rotaDataDir, err)
		return cwdPath
	} else {
		if err := f.Close(); err != nil {
			log.Printf("Warning: Error closing test file: %v", err)
		}
		if err := os.Remove(testFile); err != nil {
			log.Printf("Warning: Could not remove test file %s: %v", testFile, err)
		}
	}

	// Only log in debug mode to avoid polluting --help output
	if os.Getenv("ROTA_DEBUG") != "" {
		log.Printf("Using database location: %s", xdgDBPath)
	}

	return xdgDBPath
}
