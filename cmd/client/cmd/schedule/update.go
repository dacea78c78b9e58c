package schedule

import (
	"github.com/spf13/cobra"

	"hospitalsched/cmd/client/cmd/types"
	domain "hospitalsched/internal/domain/schedule"
)

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Изменить запись",
	Long:  `Меняет только переданные флагами поля.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := updateRequest(cmd)

		app, ctx, cancel, err := connect(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		rec, queued, err := app.Update(ctx, args[0], req)
		if err != nil {
			return explain(err)
		}

		if queued {
			types.Queued("Изменение записи " + args[0])
		} else if !types.JSONOutput {
			types.Success("Запись обновлена")
		}
		return printOne(rec)
	},
}

// updateRequest собирает только явно переданные флаги.
func updateRequest(cmd *cobra.Command) domain.UpdateRequest {
	var req domain.UpdateRequest
	f := cmd.Flags()

	str := func(name string) *string {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetString(name)
		return &v
	}

	req.DoctorName = str("doctor")
	req.PatientName = str("patient")
	req.Department = str("department")
	req.DateTime = str("at")
	req.FileURL = str("file-url")
	req.FileName = str("file-name")
	req.FileType = str("file-type")
	if f.Changed("file-size") {
		v, _ := f.GetInt64("file-size")
		req.FileSize = &v
	}

	return req
}

func init() {
	f := UpdateCmd.Flags()
	f.String("doctor", "", "врач")
	f.String("patient", "", "пациент")
	f.String("department", "", "отделение")
	f.String("at", "", "дата и время приема, RFC 3339")
	f.String("file-url", "", "ссылка на прикрепленный файл")
	f.String("file-name", "", "имя файла")
	f.Int64("file-size", 0, "размер файла в байтах")
	f.String("file-type", "", "MIME-тип файла")
}
