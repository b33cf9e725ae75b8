package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/figaroapp/figaro/internal/config"
	"github.com/figaroapp/figaro/internal/tui"
	"github.com/figaroapp/figaro/internal/tui/commands"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	booking commands.Booking
	cache   commands.Cache
	config  *config.Config
	root    *cobra.Command
	debug   bool // Enable debug logging
	noColor bool
}

// NewApp creates a new CLI application with the given booking client,
// snapshot cache, and config.
func NewApp(booking commands.Booking, cache commands.Cache, cfg *config.Config) *App {
	a := &App{booking: booking, cache: cache, config: cfg}

	a.root = &cobra.Command{
		Use:   "figaro",
		Short: "A terminal calendar for barbershop appointments",
		Long: `Figaro is a terminal calendar for managing barbershop appointments.

It shows the week's bookings in a grid and lets you reschedule them by
dragging with the mouse. Moves are validated against working hours and
existing bookings before they reach the backend.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.booking, a.cache, a.config, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to figaro-debug.log)")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.weekCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("figaro %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
