package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emilianohg/staffboard/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import FILE.xlsx",
	Short: "Import project assignments from a spreadsheet",
	Long: `Import project assignments from an .xlsx file.

The sheet must have "Project Name", "Start Date" and "End Date" columns.
Rows that cannot be imported are reported and skipped; the rest are kept.
A Resource that matches a team member's name exactly is assigned to them.

Examples:
  staffboard import projects.xlsx
  staffboard import projects.xlsx --sheet "Q3 Projects"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sheet, _ := cmd.Flags().GetString("sheet")

		run("import", func(a *app) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := importer.ParseWorkbook(f, sheet)
			if err != nil {
				return err
			}

			fmt.Printf("Importing %d rows...\n", len(rows))

			reconciler := importer.NewReconciler(a.db, a.svc.Validator, a.log, a.cfg.HoursPerDay)
			result, err := reconciler.ImportRows(rows)
			if err != nil {
				return err
			}

			fmt.Printf("Batch: %s\n", result.BatchID)
			fmt.Printf("Inserted: %d\n", result.Inserted)
			fmt.Printf("Skipped: %d\n", result.Skipped)
			for _, e := range result.Errors {
				fmt.Printf("  row %d (%s): %s\n", e.Line, e.Label, e.Message)
			}
			return nil
		})
	},
}

func init() {
	importCmd.Flags().StringP("sheet", "s", "", "Sheet name (default: first sheet)")
}
