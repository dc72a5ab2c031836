// Package main is the entry point for the Gaia admin console.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nouh2/gaia-admin-tui/internal/app"
	"github.com/Nouh2/gaia-admin-tui/internal/config"
	"github.com/Nouh2/gaia-admin-tui/internal/services"
	"github.com/Nouh2/gaia-admin-tui/internal/ui/tabs/conversations"
	"github.com/Nouh2/gaia-admin-tui/internal/ui/tabs/overview"
	"github.com/Nouh2/gaia-admin-tui/internal/ui/tabs/search"
	"github.com/Nouh2/gaia-admin-tui/internal/ui/tabs/users"
	"github.com/Nouh2/gaia-admin-tui/internal/version"
)

// connectTimeout bounds the initial document store connection.
const connectTimeout = 15 * time.Second

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Handle help flag
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Connect to the document store and build the service manager
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	mgr, err := services.NewManager(ctx, cfg)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Ensure cleanup on exit
	defer func() {
		if closeErr := mgr.Close(context.Background()); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	// 3. Create the root Bubble Tea model
	model := app.NewModel(mgr)

	// 4. Initialize tabs with shared state and commands
	state := model.GetState()
	commands := model.GetCommands()
	tabs := []app.Tab{
		overview.New(state),                // Tab 0: Overview - totals, plans, volume
		users.New(state, commands),         // Tab 1: Users - account browser
		conversations.New(state, commands), // Tab 2: Conversations - transcript browser
		search.New(state, commands),        // Tab 3: Search - messages and emails
	}
	model.SetTabs(tabs)

	// 5. Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 6. Create and configure the Bubble Tea program
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer (full terminal)
		tea.WithMouseCellMotion(), // Enable mouse support for selection
	)

	// 7. Handle signals in a separate goroutine
	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	// 8. Run the TUI program; blocks until the user quits or an error occurs
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Gaia Admin Console - inspect user accounts and assistant conversations

Usage:
  gaia-admin [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-4             Switch between tabs (Overview, Users, Conversations, Search)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  Enter           Select/confirm
  r               Refresh the data snapshot
  e               Export (users or the selected conversation)
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  MONGO_URI         Document store connection string (required)
  GAIA_DATABASE     Database name (default: AuthDB)
  CACHE_TTL         Snapshot time-to-live (default: 60s)
  REQUEST_TIMEOUT   Per-request store timeout (default: 15s)
  EXPORT_DIR        Directory for exported files (default: current directory)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/gaia-admin/.env
  - ~/.gaia-admin/.env

For more information, visit: https://github.com/Nouh2/gaia-admin-tui`)
}
