//GET    /health                  # Проверка доступности (публичный)
//POST   /user/register           # Регистрация (только с Postgres)
//POST   /user/login              # Логин (только с Postgres)
//GET    /schedules               # Список с фильтрами, сортировкой и страницами
//POST   /schedules               # Создать запись
//GET    /schedules/stats         # Сводка
//GET    /schedules/{id}          # Получить запись
//PATCH  /schedules/{id}          # Частичное обновление
//PUT    /schedules/{id}          # То же, что PATCH
//DELETE /schedules/{id}          # Удалить запись
//GET    /ws                      # Поток событий new_schedule / updated_schedule / deleted_schedule

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	healthAPI "hospitalsched/internal/app/server/api/http/health"
	"hospitalsched/internal/app/server/api/http/middleware"
	"hospitalsched/internal/app/server/api/http/middleware/auth"
	"hospitalsched/internal/app/server/api/http/middleware/logger"
	scheduleAPI "hospitalsched/internal/app/server/api/http/schedule"
	userAPI "hospitalsched/internal/app/server/api/http/user"
	"hospitalsched/internal/app/server/api/ws"
	"hospitalsched/internal/domain/schedule"
	"hospitalsched/internal/domain/session"
	"hospitalsched/internal/domain/user"
	"hospitalsched/internal/infrastructure/broadcast"
	"hospitalsched/internal/infrastructure/storage/postgres"
)

// Deps зависимости роутера. Postgres == nil означает режим без
// аутентификации: расписание открыто, /user/* не регистрируются.
type Deps struct {
	Schedules schedule.Servicer
	Hub       *broadcast.Hub
	Postgres  *postgres.Storage
	Log       *slog.Logger
}

// New создает *chi.Mux со всеми операциями через huma.Register и /ws поверх chi.
func New(deps Deps) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Hospital Scheduling API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	loggerMW := logger.New(deps.Log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthAPI.NewHandler(deps.Log, middlewares.GetAllAndClear()).SetupRoutes(API)

	var (
		authMW   *auth.Auth
		validate ws.TokenValidator
	)
	if deps.Postgres != nil {
		sessionService := session.NewService(postgres.NewSessionRepository(deps.Postgres, deps.Log), deps.Log)
		authMW = auth.New(sessionService, deps.Log)
		validate = authMW.Validate

		userService := user.NewService(
			postgres.NewUserRepository(deps.Postgres, deps.Log),
			user.NewCredentialsValidator(false),
			deps.Log,
		)
		middlewares.Add(loggerMW.Middleware())
		userAPI.NewHandler(userService, sessionService, deps.Log, middlewares.GetAllAndClear()).SetupRoutes(API)
	}

	if authMW != nil {
		middlewares.Add(authMW.Middleware(API))
	}
	middlewares.Add(loggerMW.Middleware())
	scheduleAPI.NewHandler(deps.Schedules, deps.Log, middlewares.GetAllAndClear(), authMW != nil).SetupRoutes(API)

	mux.Handle("/ws", ws.NewHandler(deps.Hub, validate, deps.Log))

	return mux
}
