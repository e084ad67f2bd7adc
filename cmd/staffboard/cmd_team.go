package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emilianohg/staffboard/internal/service"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage team members",
}

var teamAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a team member",
	Long: `Add a team member. Email addresses must be unique.

Example:
  staffboard team add --name "Amina Otieno" --email amina@example.com --role Scripting`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run("team add", func(a *app) error {
			var in service.PersonInput
			in.Name, _ = cmd.Flags().GetString("name")
			in.Email, _ = cmd.Flags().GetString("email")
			in.Role, _ = cmd.Flags().GetString("role")

			p, err := a.svc.Team.Create(in)
			if err != nil {
				return err
			}
			fmt.Printf("Added team member %d: %s <%s>\n", p.ID, p.Name, p.Email)
			return nil
		})
	},
}

var teamEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change a team member's name, email or role",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run("team edit", func(a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.svc.Team.Get(id)
			if err != nil {
				return err
			}

			in := service.PersonInput{Name: current.Name, Email: current.Email, Role: current.Role}
			if cmd.Flags().Changed("name") {
				in.Name, _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("email") {
				in.Email, _ = cmd.Flags().GetString("email")
			}
			if cmd.Flags().Changed("role") {
				in.Role, _ = cmd.Flags().GetString("role")
			}

			p, err := a.svc.Team.Update(id, in)
			if err != nil {
				return err
			}
			fmt.Printf("Updated team member %d: %s <%s>\n", p.ID, p.Name, p.Email)
			return nil
		})
	},
}

var teamDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a team member",
	Long: `Delete a team member. Their projects are kept without a resource and their
leave balance is removed. With --strict the delete is refused while any
project still references them.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		strict, _ := cmd.Flags().GetBool("strict")

		run("team delete", func(a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			released, err := a.svc.Team.Delete(id, !strict)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted team member %d\n", id)
			if released > 0 {
				fmt.Printf("%d project(s) are now unassigned\n", released)
			}
			return nil
		})
	},
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List team members with their assigned hours",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run("team list", func(a *app) error {
			people, err := a.svc.Team.List()
			if err != nil {
				return err
			}
			if len(people) == 0 {
				fmt.Println("No team members yet.")
				return nil
			}
			for _, p := range people {
				fmt.Printf("%4d  %-24s %-30s %-16s %5dh\n", p.ID, p.Name, p.Email, p.Role, p.AssignedHours)
			}
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{teamAddCmd, teamEditCmd} {
		c.Flags().String("name", "", "Full name")
		c.Flags().String("email", "", "Email address")
		c.Flags().String("role", "", "Role")
	}
	teamDeleteCmd.Flags().Bool("strict", false, "Refuse to delete a member who still has projects")

	teamCmd.AddCommand(teamAddCmd)
	teamCmd.AddCommand(teamEditCmd)
	teamCmd.AddCommand(teamDeleteCmd)
	teamCmd.AddCommand(teamListCmd)
}
