package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"tableflip.dev/calscroll/pkg/config"
	"tableflip.dev/calscroll/pkg/store"
)

func addSessions(topLevel *cobra.Command) {
	var remove []string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List or delete the saved ui sessions.",
		Example: `
calscroll sessions
calscroll sessions --json
calscroll sessions --delete=ui
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return oo.HandleError(err)
			}
			p, err := store.Load(cfg)
			if err != nil {
				return oo.HandleError(err)
			}

			for _, name := range remove {
				if err := p.Delete(name); err != nil {
					return oo.HandleError(fmt.Errorf("delete session %q: %w", name, err))
				}
			}
			if len(remove) > 0 {
				return nil
			}

			sessions := p.Sessions(cmd.Context())
			if oo.Output() == "json" {
				b, err := json.MarshalIndent(sessions, "", "  ")
				if err != nil {
					return oo.HandleError(err)
				}
				_, _ = fmt.Fprintln(color.Output, string(b))
				return nil
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("NAME", "MONTH", "CURRENT", "SAVED")
			for _, s := range sessions {
				tbl.AddRow(s.Name,
					s.Month.Time().Format("Jan 2006"),
					s.Current.Time().Format("2006-01-02"),
					s.Saved.Local().Format(time.DateTime))
			}
			_, _ = fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&remove, "delete", nil, "Sessions to delete.")
	_ = cmd.RegisterFlagCompletionFunc("delete", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return sessionCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	cmd.Flags().BoolVar(&oo.JSON, "json", false, "Output as JSON.")

	topLevel.AddCommand(cmd)
}
