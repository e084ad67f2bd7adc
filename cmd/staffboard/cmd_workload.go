package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/emilianohg/staffboard/internal/export"
	"github.com/emilianohg/staffboard/internal/workload"
)

var workloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Show assigned hours per team member",
	Long: `Show assigned hours per team member, flagging anyone under the
underutilization threshold.

Examples:
  staffboard workload
  staffboard workload --threshold 16
  staffboard workload --export workload.xlsx`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run("workload", func(a *app) error {
			threshold := a.cfg.UnderutilizedThreshold
			if cmd.Flags().Changed("threshold") {
				threshold, _ = cmd.Flags().GetInt("threshold")
			}

			rows, err := a.svc.Workload.Summary(threshold)
			if err != nil {
				return err
			}

			for _, r := range rows {
				flag := ""
				if r.Underutilized {
					flag = "underutilized"
				}
				fmt.Printf("%-24s %-30s %-16s %5dh  %s\n", r.Name, r.Email, r.Role, r.AssignedHours, flag)
			}
			fmt.Printf("\nTotal: %dh across %d team member(s)\n", workload.TotalHours(rows), len(rows))

			exportPath, _ := cmd.Flags().GetString("export")
			if exportPath == "" {
				return nil
			}
			if !filepath.IsAbs(exportPath) && filepath.Dir(exportPath) == "." {
				if err := os.MkdirAll(a.cfg.ExportsOutput, 0755); err != nil {
					return err
				}
				exportPath = filepath.Join(a.cfg.ExportsOutput, exportPath)
			}

			buf, err := export.WorkloadWorkbook(rows)
			if err != nil {
				return err
			}
			if err := os.WriteFile(exportPath, buf.Bytes(), 0644); err != nil {
				return err
			}
			fmt.Printf("Exported to %s\n", exportPath)
			return nil
		})
	},
}

func init() {
	workloadCmd.Flags().Int("threshold", 0, "Flag members under this many hours (default: underutilized_threshold from config)")
	workloadCmd.Flags().String("export", "", "Also write an .xlsx report; bare file names go to exports_output")
}
