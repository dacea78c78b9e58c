package schedule

import (
	"github.com/spf13/cobra"

	"hospitalsched/cmd/client/cmd/types"
	domain "hospitalsched/internal/domain/schedule"
)

var addReq domain.CreateRequest

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Создать запись на прием",
	Example: `  hospitalsched schedule add --doctor "Dr. Smith" --patient "John Doe" \
      --department Cardiology --at 2024-04-11T10:00:00Z`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ctx, cancel, err := connect(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		rec, queued, err := app.Add(ctx, addReq)
		if err != nil {
			return explain(err)
		}

		if queued {
			types.Queued("Запись создана локально с временным id " + rec.ID)
		} else if !types.JSONOutput {
			types.Success("Запись создана")
		}
		return printOne(rec)
	},
}

func init() {
	f := AddCmd.Flags()
	f.StringVar(&addReq.DoctorName, "doctor", "", "врач")
	f.StringVar(&addReq.PatientName, "patient", "", "пациент")
	f.StringVar(&addReq.Department, "department", "", "отделение")
	f.StringVar(&addReq.DateTime, "at", "", "дата и время приема, RFC 3339")
	f.StringVar(&addReq.FileURL, "file-url", "", "ссылка на прикрепленный файл")
	f.StringVar(&addReq.FileName, "file-name", "", "имя файла")
	f.Int64Var(&addReq.FileSize, "file-size", 0, "размер файла в байтах")
	f.StringVar(&addReq.FileType, "file-type", "", "MIME-тип файла")
}
