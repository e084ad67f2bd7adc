package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emilianohg/staffboard/internal/calendar"
	"github.com/emilianohg/staffboard/internal/config"
)

var hoursCmd = &cobra.Command{
	Use:   "hours START END",
	Short: "Suggest hours for a date range (working days x hours per day)",
	Long: `Count the Monday to Friday days between START and END (inclusive) and
multiply by the hours per day.

Examples:
  staffboard hours 2025-03-03 2025-03-09             # 40
  staffboard hours 2025-03-03 2025-03-07 --per-day 6 # 30`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		start, err := calendar.ParseDate(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		end, err := calendar.ParseDate(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		perDay, _ := cmd.Flags().GetInt("per-day")
		if perDay <= 0 {
			perDay = config.DefaultHoursPerDay
			if cfg, err := config.Load(); err == nil {
				perDay = cfg.HoursPerDay
			}
		}

		days := calendar.WorkingDays(start, end)
		fmt.Printf("Working days: %d\n", days)
		fmt.Printf("Hours: %d\n", calendar.WorkingHours(&start, &end, perDay))
	},
}

func init() {
	hoursCmd.Flags().Int("per-day", 0, "Hours per working day (default: hours_per_day from config)")
}
