package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hospitalsched/cmd/client/cmd/types"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти на сервер",
	Long: `Аутентификация на сервере.

После входа токен сохраняется локально и используется для запросов и
канала событий.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd)
		if err != nil {
			return err
		}

		fmt.Print("Login: ")
		var login string
		_, _ = fmt.Scanln(&login)

		fmt.Print("Пароль: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Login(ctx, login, string(password)); err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}
		types.Success("Вход выполнен")

		if n := len(app.Pending()); n > 0 {
			res, err := app.Sync(ctx)
			if err != nil {
				types.Warn("Синхронизация не удалась: %v", err)
				return nil
			}
			types.Success("Отправлено отложенных изменений: %d, осталось в очереди: %d", res.Applied, res.Requeued)
		}

		return nil
	},
}
