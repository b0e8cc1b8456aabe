package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/existflow/ideaful/internal/status"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Manage which statuses are offered",
	Long: `List the status catalog and enable or disable statuses.

A status cannot be disabled while any idea holds it, and Unassigned
can never be disabled.`,
}

var statusListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all statuses",
	RunE:    runStatusList,
}

var statusEnableCmd = &cobra.Command{
	Use:   "enable [status]",
	Short: "Offer a status when editing ideas",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatusToggle(strings.Join(args, " "), true)
	},
}

var statusDisableCmd = &cobra.Command{
	Use:   "disable [status]",
	Short: "Stop offering a status",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatusToggle(strings.Join(args, " "), false)
	},
}

var statusRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Move ideas with unknown statuses to Unassigned",
	RunE:  runStatusRepair,
}

var statusListEnabled bool

func init() {
	statusListCmd.Flags().BoolVarP(&statusListEnabled, "enabled", "e", false, "Only enabled statuses")

	statusCmd.AddCommand(statusListCmd)
	statusCmd.AddCommand(statusEnableCmd)
	statusCmd.AddCommand(statusDisableCmd)
	statusCmd.AddCommand(statusRepairCmd)
}

func runStatusList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	list := a.Statuses.ListAll()
	if statusListEnabled {
		list = a.Statuses.ListEnabled()
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Status"), bold.Sprint("Enabled"), bold.Sprint("Ideas"))
	for _, s := range list {
		enabled := faint.Sprint("no")
		if a.Statuses.IsEnabled(s.Name) {
			enabled = success.Sprint("yes")
		}
		if !s.CanBeDisabled {
			enabled += faint.Sprint(" (required)")
		}
		count, _ := a.DB.CountIdeasWithStatus(ctx, s.Name)
		tbl.AddRow(hexColor(s.Color, "● ")+s.Name, enabled, count)
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
	return nil
}

func runStatusToggle(name string, enabled bool) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Statuses.SetEnabled(context.Background(), name, enabled)
	if err != nil {
		return err
	}

	switch result {
	case status.Applied:
		verb := "Disabled"
		if enabled {
			verb = "Enabled"
		}
		fmt.Printf("✓ %s %s\n", verb, statusLabel(name))
	case status.RejectedRequired:
		return fmt.Errorf("%s cannot be disabled", name)
	case status.RejectedInUse:
		// the manager already printed the toast
		return fmt.Errorf("%s is in use", name)
	}
	return nil
}

func runStatusRepair(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.Statuses.RepairInvalidStatuses(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("✓ Repaired %d ideas\n", n)
	return nil
}
