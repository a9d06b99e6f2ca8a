package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/festplan/internal/logger"
	"github.com/pfrederiksen/festplan/internal/nownext"
)

// watchSpec drives the periodic re-evaluation. The interval is not aligned
// to minute boundaries: a session starting exactly "now" may be observed up
// to a minute late, which is an accepted tradeoff.
const watchSpec = "@every 1m"

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-evaluate now/next every minute and announce upcoming sessions",
		Long: `Keep running, re-resolving "now" and "next" once a minute against the
festival clock. When a saved or scheduled session starts in about ten
minutes, a one-time starting-soon notice is printed. Stop with Ctrl-C.`,
		RunE: runWatch,
	}
	cmd.Flags().BoolVar(&flagPlanOnly, "plan", false, "Watch only the saved plan")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	schedule := app.LoadSchedule(cmd)
	sessions := schedule
	if flagPlanOnly {
		sessions = app.Plan.Join(schedule)
	}

	out := cmd.OutOrStdout()
	engine := &nownext.Engine{
		Loc:      app.Loc,
		Clock:    nownext.SystemClock{},
		Tracker:  nownext.NewTracker(app.Store),
		Notifier: nownext.WriterNotifier{Out: out},
	}

	var last nownext.Result
	tick := func() {
		result := engine.Tick(sessions)
		if result == last {
			return
		}
		last = result
		if err := WriteNow(out, NewNowOutput(result, sessions), FormatText); err != nil {
			logger.Error("writing now/next failed", nil, err)
		}
	}

	// First evaluation immediately, then on the cron interval.
	tick()

	c := cron.New()
	if _, err := c.AddFunc(watchSpec, tick); err != nil {
		return fmt.Errorf("scheduling watch loop: %w", err)
	}
	c.Start()
	defer c.Stop()

	logger.Info("watch loop running", logger.Fields{
		"sessions": len(sessions),
		"interval": watchSpec,
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	fmt.Fprintln(out, "Stopping.")
	return nil
}
