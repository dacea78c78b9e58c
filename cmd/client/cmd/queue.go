package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hospitalsched/cmd/client/cmd/types"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Показать отложенные изменения",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd)
		if err != nil {
			return err
		}

		ops := app.Pending()
		if types.JSONOutput {
			return types.PrintJSON(ops)
		}
		if len(ops) == 0 {
			fmt.Println("Очередь пуста")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "#\tОперация\tЗапись\tСоздана\tID операции\t\n")
		for i, op := range ops {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n",
				i+1, op.Type, op.Data.RecordID, op.Timestamp.Format("2006-01-02 15:04:05"), op.ID)
		}
		return w.Flush()
	},
}
