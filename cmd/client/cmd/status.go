package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hospitalsched/cmd/client/cmd/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Состояние связи и очереди",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		app.Connect(ctx)

		st := app.Status()
		if types.JSONOutput {
			return types.PrintJSON(st)
		}

		fmt.Printf("Адрес:    %s\n", cfg.BaseURL())
		fmt.Printf("Сеть:     %s\n", yesNo(st.Connectivity.Online, "доступна", "нет"))
		fmt.Printf("Сервер:   %s\n", yesNo(st.Connectivity.ServerUp, "отвечает", "недоступен"))
		fmt.Printf("Очередь:  %d\n", st.Pending)
		if !st.Sync.LastRun.IsZero() {
			fmt.Printf("Синхронизация: %s\n", st.Sync.LastRun.Format(time.RFC3339))
		}
		return nil
	},
}

func yesNo(ok bool, yes, no string) string {
	if ok {
		return color.GreenString(yes)
	}
	return color.RedString(no)
}
