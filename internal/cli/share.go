package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/festplan/internal/logger"
	"github.com/pfrederiksen/festplan/internal/plan"
	"github.com/pfrederiksen/festplan/internal/store"
)

var flagShareBase string

func newShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a deep link for the saved plan and current filters",
		Long: `Print a shareable link encoding the saved plan. Opening the link on a
fresh browser (or importing it with "festplan plan import") reconstructs the
same saved set; IDs that no longer exist in the schedule are dropped
silently. Filter flags (--day, --venue, --tag, --search) are carried too,
so a filtered view is shareable. With no filter flags, the filters from
the most recent schedule view are reused.`,
		RunE: runShare,
	}
	cmd.Flags().StringVar(&flagShareBase, "base", "https://fest.example/app", "Base URL for the link")
	cmd.Flags().StringVar(&flagDay, "day", "", "Include a day filter in the link")
	cmd.Flags().StringVar(&flagVenue, "venue", "", "Include a venue filter in the link")
	cmd.Flags().StringSliceVar(&flagTags, "tag", nil, "Include a tag filter in the link (repeatable)")
	cmd.Flags().StringVar(&flagSearch, "search", "", "Include a search query in the link")
	return cmd
}

func runShare(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	filter := filterFromFlags()
	if filter.IsEmpty() {
		// Reuse the filters from the last schedule view, if any.
		if _, err := app.Store.Get(store.KeyFilterState, &filter); err != nil {
			logger.Debug("filter state read failed", logger.Fields{"error": err.Error()})
		}
	}

	link, err := plan.EncodeLink(flagShareBase, app.Plan.IDs(), filter)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), link)
	return nil
}
