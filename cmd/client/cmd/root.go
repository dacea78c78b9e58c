package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"hospitalsched/cmd/client/cmd/auth"
	"hospitalsched/cmd/client/cmd/schedule"
	"hospitalsched/cmd/client/cmd/sync"
	"hospitalsched/cmd/client/cmd/types"
	"hospitalsched/internal/app/client"
	"hospitalsched/internal/app/client/config"
	"hospitalsched/internal/utils/logger"
)

var (
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	debug     bool
	ephemeral bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "hospitalsched",
	Short: "Клиент расписания приемов больницы",
	Long: `hospitalsched управляет записями на прием: создание, просмотр,
изменение и удаление.

Если сервер недоступен, изменения сохраняются в локальной очереди и
отправляются автоматически, когда связь восстанавливается.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		types.Fail("Ошибка: %v", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoad()

	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	cfg.Ephemeral = ephemeral

	switch {
	case debug:
		log = logger.New(config.EnvLocal)
	case cfg.Env == config.EnvLocal:
		// в терминале только вывод команд
		log = logger.Discard()
	default:
		log = logger.New(cfg.Env)
	}

	var err error
	app, err = client.New(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный вывод")
	rootCmd.PersistentFlags().BoolVar(&types.JSONOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "не сохранять очередь на диск")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера")

	auth.AuthCmd.AddCommand(auth.LoginCmd, auth.RegisterCmd)
	schedule.ScheduleCmd.AddCommand(schedule.AddCmd, schedule.ListCmd, schedule.GetCmd,
		schedule.UpdateCmd, schedule.DeleteCmd, schedule.StatsCmd)

	rootCmd.AddCommand(auth.AuthCmd, schedule.ScheduleCmd, sync.SyncCmd,
		queueCmd, statusCmd, watchCmd)
}
