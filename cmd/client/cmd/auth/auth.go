package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd - родительская команда для регистрации и входа
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление пользователем",
	Long:  `Регистрация и вход. Нужны, только если сервер запущен с базой данных.`,
}
