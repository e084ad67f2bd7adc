package main

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/emilianohg/staffboard/internal/errors"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Check cached assigned hours against project rows and repair drift",
	Long: `Recompute every team member's assigned hours from their projects and
overwrite any cached value that disagrees. With --check nothing is written and
the command fails if drift is found.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		checkOnly, _ := cmd.Flags().GetBool("check")

		run("reconcile", func(a *app) error {
			if checkOnly {
				drifts, err := a.svc.Workload.Check()
				if err != nil {
					return err
				}
				if len(drifts) > 0 {
					printDrifts(drifts)
					return &apperrors.ConsistencyError{Drifts: drifts}
				}
				fmt.Println("All assigned hours are consistent.")
				return nil
			}

			result, err := a.svc.Workload.Reconcile()
			if err != nil {
				return err
			}
			if !result.Repaired {
				fmt.Println("All assigned hours are consistent.")
				return nil
			}
			printDrifts(result.Drifts)
			fmt.Printf("Repaired %d team member(s).\n", len(result.Drifts))
			return nil
		})
	},
}

func printDrifts(drifts []apperrors.Drift) {
	for _, d := range drifts {
		fmt.Printf("  team member %d: cached %dh, actual %dh\n", d.PersonID, d.Cached, d.Actual)
	}
}

func init() {
	reconcileCmd.Flags().Bool("check", false, "Only report drift, do not repair")
}
