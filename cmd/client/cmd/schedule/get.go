package schedule

import (
	"github.com/spf13/cobra"
)

var GetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Показать запись",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ctx, cancel, err := connect(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		rec, err := app.Get(ctx, args[0])
		if err != nil {
			return explain(err)
		}

		return printOne(rec)
	},
}
