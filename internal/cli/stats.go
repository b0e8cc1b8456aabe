package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/existflow/ideaful/internal/model"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime usage counters",
	RunE:  runStats,
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "Show achievements",
	RunE:    runAchievements,
}

var achievementsUnlockedOnly bool

func init() {
	achievementsCmd.Flags().BoolVarP(&achievementsUnlockedOnly, "unlocked", "u", false, "Only unlocked achievements")
}

func counterLabel(c model.Counter) string {
	label := strings.ReplaceAll(string(c), "_", " ")
	return strings.ToUpper(label[:1]) + label[1:]
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.Evaluator.Snapshot(context.Background())
	if err != nil {
		return err
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, c := range model.Counters {
		tbl.AddRow(counterLabel(c), bold.Sprint(s.Get(c)))
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(color.Output, tbl)
	return nil
}

func runAchievements(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	all, err := a.Evaluator.Achievements(context.Background())
	if err != nil {
		return err
	}

	unlocked := 0
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, ach := range all {
		if ach.Unlocked {
			unlocked++
		} else if achievementsUnlockedOnly {
			continue
		}
		mark := faint.Sprint("🔒")
		title := faint.Sprint(ach.Title)
		if ach.Unlocked {
			mark = "🏆"
			title = bold.Sprint(ach.Title)
		}
		tbl.AddRow(mark, faint.Sprint(ach.ID), title, ach.Description)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Printf("\n  %s of %d unlocked\n", success.Sprint(unlocked), len(all))
	return nil
}
