package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/figaroapp/figaro/internal/appointment"
	"github.com/figaroapp/figaro/internal/dateutil"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "list [date]",
		Short: "List appointments in a date range",
		Long: `List all appointments scheduled within a date range.

If no date is given, lists today's appointments. The positional date
accepts relative forms ("today", "tomorrow", "friday", "next-monday")
as well as YYYY-MM-DD. The --start/--end flags select an inclusive
range instead.`,
		Example: `  figaro list
  figaro list friday
  figaro list --start=2026-09-01 --end=2026-09-06`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var window *dateutil.DateRange
			if len(args) == 1 {
				day, err := dateutil.ParseRelativeDate(args[0], time.Now())
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", args[0], err)
				}
				window = &dateutil.DateRange{Start: day, End: day}
			} else {
				var err error
				window, err = dateutil.NewDateRange(startDate, endDate)
				if err != nil {
					return err
				}
			}

			appts, err := a.loadWindow(context.Background(), window.Start, window.End)
			if err != nil {
				return err
			}

			if len(appts) == 0 {
				fmt.Println("No appointments found in the specified date range.")
				return nil
			}

			printGroupedByDate(appts)

			working := workingMinutesPerDay(a.config.Schedule.DayStart, a.config.Schedule.DayEnd)
			days := int(window.End.Sub(window.Start).Hours()/24) + 1
			var stats Stats
			for _, appt := range appts {
				AccumulateStats(&stats, appt, appt.DateKey())
			}
			fmt.Println()
			PrintStats(stats, working*days)

			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")

	return cmd
}

// loadWindow fetches appointments from the backend, falling back to the
// local snapshot when the backend is unreachable.
func (a *App) loadWindow(ctx context.Context, from, to time.Time) ([]*appointment.Appointment, error) {
	appts, err := a.booking.ListAppointments(ctx, from, to)
	if err == nil {
		return appts, nil
	}
	if a.cache == nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	cached, cacheErr := a.cache.LoadWindow(ctx, from, to)
	if cacheErr != nil || len(cached) == 0 {
		return nil, fmt.Errorf("listing appointments: %w", errors.Join(err, cacheErr))
	}
	fmt.Println(formatMuted("Backend unreachable, showing last saved schedule."))
	return cached, nil
}

// printGroupedByDate prints appointments grouped under date headers.
func printGroupedByDate(appts []*appointment.Appointment) {
	maxName := 0
	for _, appt := range appts {
		if n := len(appt.ClientName); n > maxName {
			maxName = n
		}
	}
	if maxName > 24 {
		maxName = 24
	}

	var currentDate string
	for _, appt := range appts {
		date := appt.DateKey()
		if date != currentDate {
			if currentDate != "" {
				fmt.Println()
			}
			fmt.Println(formatHeader(fmt.Sprintf("=== %s ===", appt.StartTime.Format("Mon 2 Jan 2006"))))
			currentDate = date
		}
		PrintAppointmentRow(appt, maxName)
	}
}
