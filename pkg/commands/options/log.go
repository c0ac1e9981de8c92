package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/calscroll/pkg/config"
)

// LogOptions
type LogOptions struct {
	File  string
	Level string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.Flags().StringVar(&o.File, config.KeyLogFile, "",
		"Append logs to this file; logs are dropped when unset.")
	cmd.Flags().StringVar(&o.Level, config.KeyLogLevel, "info",
		"Minimum log level. One of 'debug', 'info' or 'error'.")
}
