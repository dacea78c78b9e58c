package schedule

import (
	"github.com/spf13/cobra"

	"hospitalsched/cmd/client/cmd/types"
)

var DeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Удалить запись",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ctx, cancel, err := connect(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		queued, err := app.Delete(ctx, args[0])
		if err != nil {
			return explain(err)
		}

		if queued {
			types.Queued("Удаление записи " + args[0])
		} else {
			types.Success("Запись %s удалена", args[0])
		}
		return nil
	},
}
