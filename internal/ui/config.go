package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/figaroapp/figaro/internal/config"
	"github.com/figaroapp/figaro/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  figaro config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.Schedule.DayStart = promptValue(reader, "Day start", cfg.Schedule.DayStart)
	cfg.Schedule.DayEnd = promptValue(reader, "Day end", cfg.Schedule.DayEnd)
	cfg.Schedule.BufferMinutes = promptInt(reader, "Buffer between appointments (minutes)", cfg.Schedule.BufferMinutes)
	cfg.Schedule.AllowAdjacent = promptBool(reader, "Allow back-to-back bookings", cfg.Schedule.AllowAdjacent)
	cfg.Schedule.MaxAdvanceDays = promptInt(reader, "Advance booking window (days)", cfg.Schedule.MaxAdvanceDays)
	cfg.API.BaseURL = promptValue(reader, "Booking API base URL", cfg.API.BaseURL)
	cfg.API.Token = promptValue(reader, "Booking API token", cfg.API.Token)
	cfg.Storage.DBPath = promptValue(reader, "Snapshot database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[schedule]")
	fmt.Printf("  day_start                 = %s\n", cfg.Schedule.DayStart)
	fmt.Printf("  day_end                   = %s\n", cfg.Schedule.DayEnd)
	fmt.Printf("  buffer_minutes            = %d\n", cfg.Schedule.BufferMinutes)
	fmt.Printf("  allow_adjacent            = %t\n", cfg.Schedule.AllowAdjacent)
	fmt.Printf("  check_barber_availability = %t\n", cfg.Schedule.CheckBarberAvailability)
	fmt.Printf("  max_advance_days          = %d\n", cfg.Schedule.MaxAdvanceDays)
	fmt.Println("\n[api]")
	fmt.Printf("  base_url                  = %s\n", cfg.API.BaseURL)
	if cfg.API.Token != "" {
		fmt.Printf("  token                     = %s\n", maskToken(cfg.API.Token))
	}
	fmt.Printf("  timeout_seconds           = %d\n", cfg.API.TimeoutSeconds)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path                   = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme                     = %s\n", cfg.UI.Theme)
}

// maskToken hides all but the last four characters of a credential.
func maskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Printf("  Not a number: %q\n", value)
	}
}

func promptBool(reader *bufio.Reader, label string, current bool) bool {
	value := promptValue(reader, label+" (true/false)", strconv.FormatBool(current))
	return strings.EqualFold(value, "true") || strings.EqualFold(value, "yes") || value == "y"
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
