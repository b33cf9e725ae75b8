package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/figaroapp/figaro/internal/dateutil"
)

func (a *App) weekCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show this week's bookings and occupancy",
		Long: `Display this week's appointments day by day with an occupancy bar
per day, Monday through Sunday.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			monday, sunday := dateutil.WeekRange(time.Now())

			appts, err := a.loadWindow(context.Background(), monday, sunday)
			if err != nil {
				return err
			}

			header := fmt.Sprintf("WEEK: %s - %s", monday.Format("Mon Jan 2"), sunday.Format("Mon Jan 2, 2006"))
			fmt.Printf("\n  %s\n", formatHeader(header))
			fmt.Println(strings.Repeat("─", 60))

			var stats Stats
			for _, appt := range appts {
				AccumulateStats(&stats, appt, appt.DateKey())
			}

			working := workingMinutesPerDay(a.config.Schedule.DayStart, a.config.Schedule.DayEnd)
			for _, day := range dateutil.WeekDays(monday) {
				key := day.Format("2006-01-02")
				ds := stats.DayStats[key]
				label := day.Format("Mon 2")
				fmt.Printf("  %-8s %s  %s\n",
					label,
					OccupancyBar(ds.BookedMinutes, working, 20),
					formatMuted(fmt.Sprintf("%d bookings, %s", ds.Bookings, FormatDuration(ds.BookedMinutes))))
			}

			fmt.Println(strings.Repeat("─", 60))
			PrintStats(stats, working*7)

			if day, minutes := stats.BusiestDay(); minutes > 0 {
				t, err := time.ParseInLocation("2006-01-02", day, time.Local)
				if err == nil {
					fmt.Printf("  Busiest day: %s (%s booked)\n",
						t.Format("Monday"), formatStats(FormatDuration(minutes)))
				}
			}

			return nil
		},
	}

	return cmd
}
