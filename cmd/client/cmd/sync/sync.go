package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hospitalsched/cmd/client/cmd/types"
	"hospitalsched/internal/app/client"
)

var forceSync bool

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Отправить отложенные изменения",
	Long: `Воспроизводит очередь отложенных изменений на сервере в порядке
постановки. Неудачные операции остаются в очереди до следующей попытки.

Без --force команда ничего не делает, если сервер недоступен.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if state := app.Connect(ctx); !state.Connected() && !forceSync {
			types.Warn("Сервер недоступен, в очереди %d операций", len(app.Pending()))
			return nil
		}

		return runSync(ctx, app)
	},
}

func runSync(ctx context.Context, app *client.App) error {
	res, err := app.Sync(ctx)
	if types.JSONOutput {
		if perr := types.PrintJSON(res); perr != nil {
			return perr
		}
		return err
	}
	if err != nil {
		for _, op := range res.Unsaved {
			types.Fail("не сохранена операция %s %s (%s)", op.Type, op.Data.RecordID, op.ID)
		}
		return fmt.Errorf("ошибка синхронизации: %w", err)
	}

	if res.Applied+res.Failed == 0 {
		types.Success("Очередь пуста")
		return nil
	}

	types.Success("Отправлено: %d", res.Applied)
	for from, to := range res.Remapped {
		fmt.Printf("  %s -> %s\n", from, to)
	}
	if res.Failed > 0 {
		types.Warn("Не удалось: %d, возвращено в очередь: %d", res.Failed, res.Requeued)
		for _, e := range res.Errors {
			fmt.Printf("  %s %s: %s\n", e.Type, e.RecordID, e.Error)
		}
	}
	return nil
}

func init() {
	SyncCmd.Flags().BoolVarP(&forceSync, "force", "f", false, "запустить даже без связи с сервером")
}
