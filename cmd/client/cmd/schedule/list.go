package schedule

import (
	"fmt"

	"github.com/spf13/cobra"

	"hospitalsched/cmd/client/cmd/types"
	domain "hospitalsched/internal/domain/schedule"
)

var listQuery domain.ListQuery

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список записей",
	Long: `Список записей с фильтрами по подстроке (без учета регистра),
сортировкой и постраничным выводом.

Без связи с сервером список строится по локальному кэшу.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ctx, cancel, err := connect(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		page, fromCache, err := app.List(ctx, listQuery)
		if err != nil {
			return explain(err)
		}

		if types.JSONOutput {
			return types.PrintJSON(page)
		}

		if fromCache {
			types.Warn("Сервер недоступен, показаны локальные данные")
		}
		if len(page.Data) == 0 {
			fmt.Println("Записи не найдены")
			return nil
		}

		if err := printTable(page.Data); err != nil {
			return err
		}
		p := page.Pagination
		fmt.Printf("\nСтраница %d из %d, всего записей: %d\n", p.Page, p.TotalPages, p.Total)
		return nil
	},
}

func init() {
	f := ListCmd.Flags()
	f.StringVar(&listQuery.DoctorName, "doctor", "", "фильтр по врачу")
	f.StringVar(&listQuery.PatientName, "patient", "", "фильтр по пациенту")
	f.StringVar(&listQuery.Department, "department", "", "фильтр по отделению")
	f.StringVar(&listQuery.DateTime, "at", "", "фильтр по дате, например 2024-04-11")
	f.StringVar(&listQuery.SortBy, "sort-by", domain.SortByDateTime, "doctorName, patientName, department или dateTime")
	f.StringVar(&listQuery.SortOrder, "order", domain.SortDesc, "asc или desc")
	f.IntVar(&listQuery.Page, "page", domain.DefaultPage, "номер страницы")
	f.IntVar(&listQuery.Limit, "limit", domain.DefaultLimit, "записей на странице")
}
