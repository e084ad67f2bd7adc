package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/emilianohg/staffboard/internal/calendar"
	"github.com/emilianohg/staffboard/internal/repository"
	"github.com/emilianohg/staffboard/internal/service"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage project assignments",
}

var projectAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a project assignment",
	Long: `Add a project assignment. When --hours is omitted it is derived from the
working days between --start and --end.

Example:
  staffboard project add --name "Kenya tracker" --resource 3 --start 2025-03-03 --end 2025-03-14`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run("project add", func(a *app) error {
			var in service.AssignmentInput
			if err := applyAssignmentFlags(cmd.Flags(), &in); err != nil {
				return err
			}

			created, err := a.svc.Assignments.Create(in)
			if err != nil {
				return err
			}
			fmt.Printf("Created project %d: %s (%dh for %s)\n", created.ID, created.ProjectName, created.Hours, created.PersonName)
			return nil
		})
	},
}

var projectEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change fields of a project assignment",
	Long: `Change fields of a project assignment. Only the flags given are changed.

Example:
  staffboard project edit 12 --status Completed --hours 30`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run("project edit", func(a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			current, err := a.svc.Assignments.Get(id)
			if err != nil {
				return err
			}

			in := service.InputFromAssignment(current)
			if err := applyAssignmentFlags(cmd.Flags(), &in); err != nil {
				return err
			}
			// New dates without new hours mean the old figure no longer applies
			if (cmd.Flags().Changed("start") || cmd.Flags().Changed("end")) && !cmd.Flags().Changed("hours") {
				in.Hours = 0
			}

			updated, err := a.svc.Assignments.Update(id, in)
			if err != nil {
				return err
			}
			fmt.Printf("Updated project %d: %s (%dh)\n", updated.ID, updated.ProjectName, updated.Hours)
			return nil
		})
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a project assignment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run("project delete", func(a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.svc.Assignments.Delete(id); err != nil {
				return err
			}
			fmt.Printf("Deleted project %d\n", id)
			return nil
		})
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List project assignments",
	Long: `List project assignments, optionally filtered.

Examples:
  staffboard project list --resource 3
  staffboard project list --country Kenya --from 2025-01-01 --to 2025-06-30`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run("project list", func(a *app) error {
			filter, err := assignmentFilter(cmd.Flags())
			if err != nil {
				return err
			}

			assignments, err := a.svc.Assignments.List(filter)
			if err != nil {
				return err
			}

			for _, p := range assignments {
				resource := "(unassigned)"
				if p.PersonName != "" {
					resource = p.PersonName
				}
				fmt.Printf("%4d  %-30s %-20s %s..%s %5dh  %-12s %s\n",
					p.ID, p.ProjectName, resource,
					calendar.FormatDate(p.StartDate), calendar.FormatDate(p.EndDate),
					p.Hours, p.Status, p.Activity,
				)
			}

			stats, err := a.svc.Assignments.Stats(filter, time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("\nProjects: %d  Hours: %d  Resources: %d  Completed in last 7 days: %d\n",
				stats.TotalProjects, stats.TotalHours, stats.UniqueResources, stats.CompletedLast7Days)
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{projectAddCmd, projectEditCmd} {
		f := c.Flags()
		f.String("name", "", "Project name")
		f.Int64("resource", 0, "Team member id")
		f.String("start", "", "Start date (YYYY-MM-DD)")
		f.String("end", "", "End date (YYYY-MM-DD)")
		f.Int("hours", 0, "Hours (default: working days x hours per day)")
		f.String("activity", "", "Activity")
		f.String("country", "", "Client country")
		f.String("service-line", "", "Service line")
		f.String("local", "", "Resource available in Kenya (Yes/No)")
		f.String("partners", "", "Bulgaria/Tunisia/Thailand partners needed (Yes/No)")
		f.String("priority", "", "Low, Medium, High or Urgent")
		f.String("status", "", "Not Started, In Progress, Completed, Blocked or Deferred")
		f.String("impact", "", "On Track, Warning or Problem")
		f.String("comments", "", "Comments")
	}

	projectListCmd.Flags().Int64("resource", 0, "Only this team member's projects")
	projectListCmd.Flags().String("activity", "", "Only this activity")
	projectListCmd.Flags().String("country", "", "Only this client country")
	projectListCmd.Flags().String("status", "", "Only this status")
	projectListCmd.Flags().String("from", "", "Start date on or after (YYYY-MM-DD)")
	projectListCmd.Flags().String("to", "", "End date on or before (YYYY-MM-DD)")

	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectEditCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectListCmd)
}

// applyAssignmentFlags copies every flag the user set onto in.
func applyAssignmentFlags(flags *pflag.FlagSet, in *service.AssignmentInput) error {
	strs := map[string]*string{
		"name":         &in.ProjectName,
		"activity":     &in.Activity,
		"country":      &in.ClientCountry,
		"service-line": &in.ServiceLine,
		"local":        &in.ResourceAvailableLocal,
		"partners":     &in.PartnersNeeded,
		"priority":     &in.Priority,
		"status":       &in.Status,
		"impact":       &in.Impact,
		"comments":     &in.Comments,
	}
	for name, dst := range strs {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	if flags.Changed("resource") {
		id, _ := flags.GetInt64("resource")
		in.PersonID = &id
	}
	if flags.Changed("hours") {
		in.Hours, _ = flags.GetInt("hours")
	}

	for name, dst := range map[string]**time.Time{"start": &in.StartDate, "end": &in.EndDate} {
		if !flags.Changed(name) {
			continue
		}
		raw, _ := flags.GetString(name)
		d, err := calendar.ParseDate(raw)
		if err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
		*dst = &d
	}
	return nil
}

func assignmentFilter(flags *pflag.FlagSet) (repository.AssignmentFilter, error) {
	var filter repository.AssignmentFilter
	if flags.Changed("resource") {
		id, _ := flags.GetInt64("resource")
		filter.PersonID = &id
	}
	filter.Activity, _ = flags.GetString("activity")
	filter.ClientCountry, _ = flags.GetString("country")
	filter.Status, _ = flags.GetString("status")

	for name, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		raw, _ := flags.GetString(name)
		if raw == "" {
			continue
		}
		d, err := calendar.ParseDate(raw)
		if err != nil {
			return filter, fmt.Errorf("--%s: %w", name, err)
		}
		*dst = &d
	}
	return filter, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
