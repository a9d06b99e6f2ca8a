package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/festplan/internal/plan"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage your saved plan",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the saved plan in its active sort order",
		RunE:  runPlanList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <session-id>...",
		Short: "Save sessions to the plan",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPlanAdd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <session-id>...",
		Short: "Remove sessions from the plan",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPlanRemove,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "sort <chrono|day|start>",
		Short: "Set the plan's sort order",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlanSort,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <link>",
		Short: "Merge a shared plan link into the saved plan",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlanImport,
	})

	return cmd
}

func runPlanList(cmd *cobra.Command, args []string) error {
	format, err := parseFormat()
	if err != nil {
		return err
	}

	app, err := newApp()
	if err != nil {
		return err
	}

	schedule := app.LoadSchedule(cmd)
	joined := app.Plan.Join(schedule)

	saved := make(map[string]bool, len(joined))
	for _, s := range joined {
		saved[s.ID] = true
	}

	result := &ScheduleOutput{
		Total:    len(joined),
		Sessions: joined,
		Saved:    saved,
	}
	if len(joined) == 0 && format == FormatText {
		fmt.Fprintln(cmd.OutOrStdout(), "Your plan is empty. Save sessions with: festplan plan add <session-id>")
		return nil
	}
	return WriteSchedule(cmd.OutOrStdout(), result, format)
}

func runPlanAdd(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	added := 0
	for _, id := range args {
		if app.Plan.Add(id) {
			added++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d of %d sessions.\n", added, len(args))
	return nil
}

func runPlanRemove(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	removed := 0
	for _, id := range args {
		if app.Plan.Remove(id) {
			removed++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d of %d sessions.\n", removed, len(args))
	return nil
}

func runPlanSort(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	mode, err := plan.ParseSortMode(args[0])
	if err != nil {
		return err
	}
	if err := app.Plan.SetSortMode(mode); err != nil {
		return fmt.Errorf("saving sort preference: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Plan sort order set to %s.\n", mode)
	return nil
}

func runPlanImport(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	schedule := app.LoadSchedule(cmd)
	ids, _, err := plan.DecodeLink(args[0], schedule)
	if err != nil {
		return fmt.Errorf("reading share link: %w", err)
	}

	added := app.Plan.Merge(ids)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new sessions (%d in link).\n", added, len(ids))
	return nil
}
