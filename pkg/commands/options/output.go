package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON   bool
	Format string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
	cmd.Flags().StringVarP(&po.Format, "output", "o", "",
		"Output format. One of 'json' or 'yaml'; a table when unset.")
}

// Output resolves the flags to "", "json" or "yaml".
func (o *OutputOptions) Output() string {
	if o.JSON {
		return "json"
	}
	return o.Format
}

func (o *OutputOptions) HandleError(err error) error {
	if o.Output() == "json" && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
