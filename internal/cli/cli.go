package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/festplan/internal/config"
	"github.com/pfrederiksen/festplan/internal/logger"
	"github.com/pfrederiksen/festplan/internal/plan"
	"github.com/pfrederiksen/festplan/internal/session"
	"github.com/pfrederiksen/festplan/internal/source"
	"github.com/pfrederiksen/festplan/internal/store"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagDataDir string
	flagFormat  string
	flagVerbose bool

	flagDay    string
	flagVenue  string
	flagTags   []string
	flagSearch string
)

// App bundles the wired core components for one command invocation.
type App struct {
	Conf  *config.Config
	Store store.Store
	Plan  *plan.Plan
	Loc   *time.Location
}

// newApp loads configuration and wires the store, plan, and timezone.
func newApp() (*App, error) {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	conf, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagDataDir != "" {
		conf.DataDir = flagDataDir
	}

	st, err := store.NewFileStore(conf.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	loc, err := conf.Location()
	if err != nil {
		return nil, err
	}

	bumpVisitCount(st)

	return &App{
		Conf:  conf,
		Store: st,
		Plan:  plan.New(st),
		Loc:   loc,
	}, nil
}

// bumpVisitCount records a launch. Best-effort: storage trouble never
// blocks a command.
func bumpVisitCount(st store.Store) {
	var visits int
	if _, err := st.Get(store.KeyVisitCount, &visits); err != nil {
		return
	}
	if err := st.Set(store.KeyVisitCount, visits+1); err != nil {
		logger.Debug("visit counter write failed", logger.Fields{"error": err.Error()})
	}
}

// LoadSchedule resolves the schedule through the source fallback chain.
// Per the resolver contract this always yields something renderable.
func (a *App) LoadSchedule(cmd *cobra.Command) []session.Session {
	return source.NewResolver(a.Conf, a.Store).Resolve(cmd.Context())
}

// rememberFilter persists the last non-empty filter so "share" can pick it
// up when invoked without filter flags. Best-effort.
func rememberFilter(st store.Store, filter session.Filter) {
	if filter.IsEmpty() {
		return
	}
	if err := st.Set(store.KeyFilterState, filter); err != nil {
		logger.Debug("filter state write failed", logger.Fields{"error": err.Error()})
	}
}

// filterFromFlags collects the root filter flags.
func filterFromFlags() session.Filter {
	return session.Filter{
		Day:   flagDay,
		Venue: flagVenue,
		Tags:  flagTags,
		Query: flagSearch,
	}
}

// parseFormat validates the --format flag.
func parseFormat() (OutputFormat, error) {
	format := OutputFormat(flagFormat)
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

// NewRootCmd creates the root command. Running it with no subcommand shows
// the (optionally filtered) schedule.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "festplan",
		Short: "Festival schedule companion",
		Long: `A schedule companion for festival attendees: browse and filter the
published schedule, track what's happening now and next, keep a personal
plan, and export it to calendar or spreadsheet formats.`,
		RunE:          runSchedule,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config (defaults apply when absent)")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Override the data directory for local state")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.Flags().StringVar(&flagDay, "day", "", "Filter by day label")
	cmd.Flags().StringVar(&flagVenue, "venue", "", "Filter by venue")
	cmd.Flags().StringSliceVar(&flagTags, "tag", nil, "Filter by tag (repeatable)")
	cmd.Flags().StringVar(&flagSearch, "search", "", "Free-text search over title, speaker, tags, venue")

	cmd.AddCommand(newNowCmd())
	cmd.AddCommand(newPlanCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newShareCmd())
	cmd.AddCommand(newWatchCmd())

	return cmd
}

// runSchedule renders the schedule view.
func runSchedule(cmd *cobra.Command, args []string) error {
	format, err := parseFormat()
	if err != nil {
		return err
	}

	app, err := newApp()
	if err != nil {
		return err
	}

	schedule := app.LoadSchedule(cmd)
	filter := filterFromFlags()
	rememberFilter(app.Store, filter)
	shown := filter.Apply(schedule)

	saved := make(map[string]bool)
	for _, id := range app.Plan.IDs() {
		saved[id] = true
	}

	result := &ScheduleOutput{
		Label:    app.Conf.FestivalLabel,
		Total:    len(schedule),
		Sessions: shown,
		Saved:    saved,
		Filtered: !filter.IsEmpty(),
	}
	return WriteSchedule(cmd.OutOrStdout(), result, format)
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
