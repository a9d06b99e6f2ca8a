package cli

import (
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/festplan/internal/nownext"
)

var flagPlanOnly bool

func newNowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "now",
		Short: "Show what is happening now and what is next",
		RunE:  runNow,
	}
	cmd.Flags().BoolVar(&flagPlanOnly, "plan", false, "Resolve against the saved plan instead of the full schedule")
	return cmd
}

func runNow(cmd *cobra.Command, args []string) error {
	format, err := parseFormat()
	if err != nil {
		return err
	}

	app, err := newApp()
	if err != nil {
		return err
	}

	schedule := app.LoadSchedule(cmd)

	// The saved-plan view resolves over the joined subset so both views
	// answer consistently from the same clock.
	sessions := schedule
	if flagPlanOnly {
		sessions = app.Plan.Join(schedule)
	}

	moment := nownext.MomentAt(nownext.SystemClock{}.Now(), app.Loc)
	result := nownext.Resolve(sessions, moment)

	return WriteNow(cmd.OutOrStdout(), NewNowOutput(result, sessions), format)
}
