package schedule

import (
	"fmt"

	"github.com/spf13/cobra"

	"hospitalsched/cmd/client/cmd/types"
)

var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Сводка по записям",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ctx, cancel, err := connect(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		st, fromCache, err := app.Stats(ctx)
		if err != nil {
			return err
		}

		if types.JSONOutput {
			return types.PrintJSON(st)
		}
		if fromCache {
			types.Warn("Сервер недоступен, сводка по локальным данным")
		}

		fmt.Printf("Всего записей:        %d\n", st.Total)
		if st.BusiestDoctor != "" {
			fmt.Printf("Самый загруженный врач: %s (%d)\n", st.BusiestDoctor, st.BusiestDoctorCount)
		}
		if st.PopularDepartment != "" {
			fmt.Printf("Популярное отделение:  %s (%d)\n", st.PopularDepartment, st.PopularDepartmentCount)
		}
		return nil
	},
}
