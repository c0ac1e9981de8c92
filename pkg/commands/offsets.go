package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/calscroll/pkg/commands/options"
	"tableflip.dev/calscroll/pkg/config"
	"tableflip.dev/calscroll/pkg/runner/offsets"
)

func addOffsets(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	co := &options.CurrentOptions{}
	var (
		months []string
		days   []string
		width  int
	)

	cmd := &cobra.Command{
		Use:   "offsets",
		Short: "Print the scroll offset of months and days without starting the UI.",
		Example: `
calscroll offsets --month=2024-05
calscroll offsets --current=2024-03-15 --day=2024-03-20 -o yaml
calscroll offsets --horizontal --viewport-width=120 --month=2025-01 --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return oo.HandleError(err)
			}
			o := &offsets.Offsets{
				Config:        cfg,
				Months:        months,
				Days:          days,
				Output:        oo.Output(),
				ViewportWidth: width,
				Out:           os.Stdout,
			}
			current, err := co.GetCurrent()
			if err != nil {
				return oo.HandleError(err)
			}
			if current != nil {
				o.Current = *current
			}
			return oo.HandleError(o.Do(cmd.Context()))
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddCurrentArgs(cmd, co)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().StringSliceVar(&months, "month", nil,
		`Months to compute, example: --month=2024-05 or --month="May 2024".`)
	cmd.Flags().StringSliceVar(&days, "day", nil,
		"Days to compute, landing on the week row that holds them.")
	cmd.Flags().IntVar(&width, "viewport-width", 80,
		"Viewport width used as the month width of horizontal lists.")

	topLevel.AddCommand(cmd)
}
