package app

import (
	"github.com/pocketledger/pocketledger/internal/config"
	"github.com/pocketledger/pocketledger/internal/event_bus"
	"github.com/pocketledger/pocketledger/internal/utils"
	"github.com/pocketledger/pocketledger/pkg/goal"
	"github.com/pocketledger/pocketledger/pkg/kvstore"
	"github.com/pocketledger/pocketledger/pkg/limit"
	"github.com/pocketledger/pocketledger/pkg/settings"
	"github.com/pocketledger/pocketledger/pkg/stats"
	"github.com/pocketledger/pocketledger/pkg/transaction"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Store kvstore.Store
	Bus   *event_bus.EventBus
	Clock utils.Clock

	TransactionRepo    transaction.Repository
	TransactionService *transaction.ServiceImpl
	TransactionHandler *transaction.Handler

	LimitRepo    limit.Repository
	LimitService *limit.ServiceImpl
	LimitHandler *limit.Handler

	GoalRepo    goal.Repository
	GoalService *goal.ServiceImpl
	GoalHandler *goal.Handler

	ThemeService    *settings.ThemeService
	DataService     *settings.DataService
	SettingsHandler *settings.Handler

	StatsService     *stats.StatsServiceImpl
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler
	LimitWatcher     *stats.LimitWatcher
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(store kvstore.Store, bus *event_bus.EventBus, cfg config.Application) (*Dependencies, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	weekStart, err := cfg.WeekStartDay()
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{Store: store, Bus: bus}
	deps.Clock = &utils.SystemClock{Location: location}

	deps.TransactionRepo = transaction.NewRepository(store)
	deps.TransactionService = transaction.NewService(deps.TransactionRepo, deps.Clock)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService, location)

	deps.LimitRepo = limit.NewRepository(store)
	deps.LimitService = limit.NewService(deps.LimitRepo)
	deps.LimitHandler = limit.NewHandler(deps.LimitService)

	deps.GoalRepo = goal.NewRepository(store)
	deps.GoalService = goal.NewService(deps.GoalRepo, deps.Clock)
	deps.GoalHandler = goal.NewHandler(deps.GoalService)

	deps.ThemeService = settings.NewThemeService(store)
	deps.DataService = settings.NewDataService(store, deps.ThemeService)
	deps.SettingsHandler = settings.NewHandler(deps.ThemeService, deps.DataService)

	deps.StatsService = stats.NewStatsServiceImpl(deps.TransactionRepo, deps.GoalService, deps.LimitRepo, deps.Clock, weekStart, cfg.App.Currency)
	deps.CsvStatsRenderer = stats.NewCsvStatsRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvStatsRenderer)
	deps.LimitWatcher = stats.NewLimitWatcher(deps.StatsService, cfg.App.Currency, cfg.Refresh.Interval, bus)

	return deps, nil
}
