package schedule

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"hospitalsched/cmd/client/cmd/types"
	"hospitalsched/internal/app/client"
	domain "hospitalsched/internal/domain/schedule"
)

const requestTimeout = 15 * time.Second

// ScheduleCmd - родительская команда для операций с записями на прием
var ScheduleCmd = &cobra.Command{
	Use:     "schedule",
	Aliases: []string{"s"},
	Short:   "Управление записями на прием",
	Long:    `Создание, просмотр, обновление и удаление записей на прием.`,
}

// connect проверяет связь перед командой и возвращает приложение.
func connect(cmd *cobra.Command) (*client.App, context.Context, context.CancelFunc, error) {
	app, err := types.AppFrom(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	app.Connect(ctx)

	return app, ctx, cancel, nil
}

// explain делает ошибки валидации читаемыми.
func explain(err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			types.Fail("%s: %s", f.Field, f.Message)
		}
		return fmt.Errorf("данные не прошли проверку")
	}
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("запись не найдена")
	}
	return err
}

func printOne(s domain.Schedule) error {
	if types.JSONOutput {
		return types.PrintJSON(s)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", s.ID)
	fmt.Fprintf(w, "Врач:\t%s\n", s.DoctorName)
	fmt.Fprintf(w, "Пациент:\t%s\n", s.PatientName)
	fmt.Fprintf(w, "Отделение:\t%s\n", s.Department)
	fmt.Fprintf(w, "Время:\t%s\n", s.DateTimeText())
	if s.FileName != "" {
		fmt.Fprintf(w, "Файл:\t%s (%s, %d байт)\n", s.FileName, s.FileType, s.FileSize)
	}
	return w.Flush()
}

func printTable(items []domain.Schedule) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tВрач\tПациент\tОтделение\tВремя\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t\n")
	for _, s := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			s.ID, truncate(s.DoctorName, 24), truncate(s.PatientName, 24), s.Department, s.DateTimeText())
	}
	return w.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
