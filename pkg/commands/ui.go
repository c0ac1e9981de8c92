package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/calscroll/pkg/commands/options"
	"tableflip.dev/calscroll/pkg/config"
	"tableflip.dev/calscroll/pkg/logging"
	teaui "tableflip.dev/calscroll/pkg/runner/tea"
	"tableflip.dev/calscroll/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	co := &options.CurrentOptions{}
	logo := &options.LogOptions{}
	var (
		ics     []string
		session string
		restore bool
	)

	cmd := &cobra.Command{
		Use:     "ui",
		Aliases: []string{"tui"},
		Short:   "Scroll through the months interactively.",
		Example: `
calscroll ui
calscroll ui --current=2024-03 --past=12 --future=12
calscroll ui --horizontal --paging
calscroll ui --ics ~/calendars/work.ics
`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			closeLog, err := setupLogging(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			current, err := co.GetCurrent()
			if err != nil {
				return err
			}

			p, err := store.Load(cfg)
			if err != nil {
				// Run without sessions rather than fail.
				logging.Error("ui: open session store", err, "path", cfg.StatePath)
				p = nil
			}

			opts := teaui.Options{
				Config:  cfg,
				Store:   p,
				Session: session,
				// An explicit current date wins over the saved month.
				Restore: restore && current == nil,
			}
			if current != nil {
				opts.Current = *current
			}
			logging.Info("ui: start", "session", session, "past", cfg.Past, "future", cfg.Future)
			return teaui.Run(cmd.Context(), opts)
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddCurrentArgs(cmd, co)
	options.AddLogArgs(cmd, logo)
	cmd.Flags().StringSliceVar(&ics, config.KeyICS, nil,
		"iCalendar files whose events mark days; repeat or comma separate.")
	cmd.Flags().StringVar(&session, "session", teaui.DefaultSession,
		"Name of the session that remembers the visible month.")
	cmd.Flags().BoolVar(&restore, "restore", true,
		"Reopen on the month the session was left at.")
	_ = cmd.RegisterFlagCompletionFunc("session", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return sessionCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

// setupLogging points the logger at the configured file and level.
func setupLogging(cfg *config.Config) (func() error, error) {
	closeLog, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return nil, err
	}
	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))
	return closeLog, nil
}
