package types

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hospitalsched/internal/app/client"
)

type ctxKey string

// ClientAppKey ключ, под которым root кладет *client.App в контекст команды.
const ClientAppKey ctxKey = "app"

// JSONOutput выставляется глобальным флагом --json.
var JSONOutput bool

func AppFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
	errMark  = color.New(color.FgRed).SprintFunc()
)

func Success(format string, args ...any) {
	fmt.Println(okMark("✓"), fmt.Sprintf(format, args...))
}

func Warn(format string, args ...any) {
	fmt.Println(warnMark("!"), fmt.Sprintf(format, args...))
}

func Fail(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errMark("✗"), fmt.Sprintf(format, args...))
}

func PrintJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Queued сообщает, что изменение сохранено локально.
func Queued(what string) {
	Warn("%s: сервер недоступен, изменение сохранено в очереди и будет отправлено при подключении", what)
}
