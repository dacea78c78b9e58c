package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hospitalsched/cmd/client/cmd/types"
	"hospitalsched/internal/domain/schedule"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Следить за изменениями в реальном времени",
	Long: `Подписывается на события сервера и печатает их. Пока команда
работает, отложенные изменения отправляются автоматически при
восстановлении связи.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Println("Ожидание событий, Ctrl+C для выхода")
		app.Run(ctx, printEvent)

		return nil
	},
}

var (
	created = color.New(color.FgGreen).SprintFunc()
	updated = color.New(color.FgCyan).SprintFunc()
	deleted = color.New(color.FgRed).SprintFunc()
)

func printEvent(ev schedule.Event) {
	if types.JSONOutput {
		raw, err := schedule.EncodeEvent(ev)
		if err == nil {
			fmt.Println(string(raw))
		}
		return
	}

	at := ev.At.Format("15:04:05")
	switch ev.Kind {
	case schedule.EventCreated:
		s := ev.Schedule
		fmt.Printf("%s %s %s: %s -> %s (%s, %s)\n", at, created("+"), s.ID, s.PatientName, s.DoctorName, s.Department, s.DateTimeText())
	case schedule.EventUpdated:
		s := ev.Schedule
		fmt.Printf("%s %s %s: %s -> %s (%s, %s)\n", at, updated("~"), s.ID, s.PatientName, s.DoctorName, s.Department, s.DateTimeText())
	case schedule.EventDeleted:
		fmt.Printf("%s %s %s\n", at, deleted("-"), ev.ID)
	}
}
