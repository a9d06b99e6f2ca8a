package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/festplan/internal/export"
	"github.com/pfrederiksen/festplan/internal/plan"
	"github.com/pfrederiksen/festplan/internal/session"
)

var (
	flagExportOut  string
	flagExportSort string
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <ics|csv>",
		Short: "Export the saved plan as a calendar or spreadsheet file",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	cmd.Flags().StringVar(&flagExportOut, "out", "", "Write to a file instead of stdout")
	cmd.Flags().StringVar(&flagExportSort, "sort", "", "Sort order for this export (chrono, day, or start)")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	schedule := app.LoadSchedule(cmd)
	sessions := app.Plan.Join(schedule)
	if flagExportSort != "" {
		mode, err := plan.ParseSortMode(flagExportSort)
		if err != nil {
			return err
		}
		plan.Sort(sessions, mode)
	}

	content, err := renderExport(args[0], sessions, app.Conf.Timezone)
	if err != nil {
		return err
	}

	if flagExportOut == "" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}
	if err := os.WriteFile(flagExportOut, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", flagExportOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sessions to %s\n", len(sessions), flagExportOut)
	return nil
}

func renderExport(kind string, sessions []session.Session, tzid string) (string, error) {
	switch kind {
	case "ics":
		return export.ICS(sessions, tzid), nil
	case "csv":
		return export.CSV(sessions), nil
	}
	return "", fmt.Errorf("unknown export format %q (ics or csv)", kind)
}
