package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emilianohg/staffboard/internal/service"
)

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Record and review leave balances",
}

var leaveSetCmd = &cobra.Command{
	Use:   "set PERSON_ID",
	Short: "Record a team member's leave balance (days)",
	Long: `Record a team member's leave balance, replacing any previous one.

Example:
  staffboard leave set 3 --previous 2 --allocated 21 --taken 7.5`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run("leave set", func(a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var in service.LeaveInput
			in.PreviousYearBalance, _ = cmd.Flags().GetFloat64("previous")
			in.CurrentYearAllocated, _ = cmd.Flags().GetFloat64("allocated")
			in.CurrentYearTaken, _ = cmd.Flags().GetFloat64("taken")

			lb, err := a.svc.Leave.Set(id, in)
			if err != nil {
				return err
			}
			fmt.Printf("Saved leave balance for team member %d: %s of %s days taken\n",
				id, days(lb.CurrentYearTaken), days(lb.CurrentYearAllocated))
			return nil
		})
	},
}

var leaveListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every team member's leave balance",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run("leave list", func(a *app) error {
			entries, err := a.svc.Leave.Overview()
			if err != nil {
				return err
			}

			fmt.Printf("%-24s %9s %9s %9s %7s %9s %7s\n", "Name", "Previous", "Allocated", "Taken", "%Taken", "Balance", "%Left")
			for _, e := range entries {
				if e.Balance == nil {
					fmt.Printf("%-24s %s\n", e.Name, "-")
					continue
				}
				lb := e.Balance
				fmt.Printf("%-24s %9s %9s %9s %7s %9s %7s\n",
					e.Name,
					days(lb.PreviousYearBalance),
					days(lb.CurrentYearAllocated),
					days(lb.CurrentYearTaken),
					percent(lb.PercentTaken()),
					days(lb.CurrentYearBalance()),
					percent(lb.PercentBalance()),
				)
			}
			return nil
		})
	},
}

func init() {
	leaveSetCmd.Flags().Float64("previous", 0, "Balance carried from the previous year")
	leaveSetCmd.Flags().Float64("allocated", 0, "Days allocated this year")
	leaveSetCmd.Flags().Float64("taken", 0, "Days taken this year")

	leaveCmd.AddCommand(leaveSetCmd)
	leaveCmd.AddCommand(leaveListCmd)
}

func days(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// percent renders an optional percentage; undefined ones print as n/a.
func percent(pct int, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%d%%", pct)
}
