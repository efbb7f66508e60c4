package stats

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pocketledger/pocketledger/internal/rest"
	"github.com/pocketledger/pocketledger/pkg/goal"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type TotalsDTO struct {
	Daily   decimal.Decimal `json:"daily"`
	Weekly  decimal.Decimal `json:"weekly"`
	Monthly decimal.Decimal `json:"monthly"`
	Yearly  decimal.Decimal `json:"yearly"`
}

type LimitStatusDTO struct {
	Total   decimal.Decimal     `json:"total"`
	Limit   decimal.Decimal     `json:"limit"`
	Set     bool                `json:"set"`
	Over    bool                `json:"over"`
	Percent decimal.NullDecimal `json:"percent"`
}

type LimitReportDTO struct {
	Daily   LimitStatusDTO `json:"daily"`
	Weekly  LimitStatusDTO `json:"weekly"`
	Monthly LimitStatusDTO `json:"monthly"`
	Yearly  LimitStatusDTO `json:"yearly"`
}

type CategoryAmountDTO struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type TrendPointDTO struct {
	Label  string          `json:"label"`
	Start  time.Time       `json:"start"`
	Amount decimal.Decimal `json:"amount"`
}

type GoalProgressDTO struct {
	Goal                 goal.GoalDTO        `json:"goal"`
	Progress             decimal.Decimal     `json:"progress"`
	TotalExpenses        decimal.Decimal     `json:"totalExpenses"`
	DaysLeft             int64               `json:"daysLeft"`
	WeeksLeft            int64               `json:"weeksLeft"`
	MonthsLeft           int64               `json:"monthsLeft"`
	WeeklySavingsNeeded  decimal.NullDecimal `json:"weeklySavingsNeeded"`
	MonthlySavingsNeeded decimal.NullDecimal `json:"monthlySavingsNeeded"`
	Status               GoalStatus          `json:"status"`
	StatusLabel          string              `json:"statusLabel"`
}

type HighlightsDTO struct {
	HighestExpense    decimal.NullDecimal `json:"highestExpense"`
	AverageDailySpend decimal.Decimal     `json:"averageDailySpend"`
	TopCategory       *CategoryAmountDTO  `json:"topCategory"`
}

type OverviewDTO struct {
	Now           time.Time           `json:"now"`
	Currency      string              `json:"currency"`
	Totals        TotalsDTO           `json:"totals"`
	Limits        LimitReportDTO      `json:"limits"`
	TopCategories []CategoryAmountDTO `json:"topCategories"`
	WeeklyTrend   []TrendPointDTO     `json:"weeklyTrend"`
	Goals         []GoalProgressDTO   `json:"goals"`
}

type InsightsDTO struct {
	Now          time.Time           `json:"now"`
	Currency     string              `json:"currency"`
	Totals       TotalsDTO           `json:"totals"`
	Limits       LimitReportDTO      `json:"limits"`
	DailyTrend   []TrendPointDTO     `json:"dailyTrend"`
	MonthlyTrend []TrendPointDTO     `json:"monthlyTrend"`
	Categories   []CategoryAmountDTO `json:"categories"`
	Highlights   HighlightsDTO       `json:"highlights"`
}

type StatsHandler struct {
	statsService     StatsService
	csvStatsRenderer StatsRenderer
}

func NewStatsHandler(statsService StatsService, csvStatsRenderer StatsRenderer) *StatsHandler {
	return &StatsHandler{statsService, csvStatsRenderer}
}

func (handler *StatsHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := handler.statsService.GetOverview(r.Context())
	if err != nil {
		log.Errorf("Failed to build overview: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to load data", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, OverviewToDTO(overview))
}

func (handler *StatsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := handler.statsService.GetInsights(r.Context())
	if err != nil {
		log.Errorf("Failed to build insights: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to load data", err.Error())
		return
	}

	if r.Header.Get("Accept") != "text/csv" {
		rest.WriteJSON(w, http.StatusOK, InsightsToDTO(insights))
		return
	}

	csv, err := handler.csvStatsRenderer.RenderInsights(insights)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write csv response: %v", err)
	}
}

func (handler *StatsHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	progress, err := handler.statsService.GetGoalsProgress(r.Context())
	if err != nil {
		log.Errorf("Failed to load goals: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to load goals", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, goalsProgressToDTO(progress))
}

func (handler *StatsHandler) GetGoalTrend(w http.ResponseWriter, r *http.Request) {
	goalID := mux.Vars(r)["id"]
	log.Debugf("Savings trend for goal %s", goalID)

	trend, err := handler.statsService.GetSavingsTrend(r.Context(), goalID)
	if errors.Is(err, goal.ErrGoalNotFound) {
		rest.WriteError(w, http.StatusNotFound, "Goal not found", err.Error())
		return
	}
	if err != nil {
		log.Errorf("Failed to load savings trend: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to load data", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, trendToDTO(trend))
}

func OverviewToDTO(o Overview) OverviewDTO {
	return OverviewDTO{
		Now:           o.Now,
		Currency:      o.Currency,
		Totals:        totalsToDTO(o.Totals),
		Limits:        limitsToDTO(o.Limits),
		TopCategories: categoriesToDTO(o.TopCategories),
		WeeklyTrend:   trendToDTO(o.WeeklyTrend),
		Goals:         goalsProgressToDTO(o.Goals),
	}
}

func InsightsToDTO(i Insights) InsightsDTO {
	highlights := HighlightsDTO{
		HighestExpense:    i.Highlights.HighestExpense,
		AverageDailySpend: i.Highlights.AverageDailySpend,
	}
	if top := i.Highlights.TopCategory; top != nil {
		highlights.TopCategory = &CategoryAmountDTO{Category: top.Category, Amount: top.Amount}
	}
	return InsightsDTO{
		Now:          i.Now,
		Currency:     i.Currency,
		Totals:       totalsToDTO(i.Totals),
		Limits:       limitsToDTO(i.Limits),
		DailyTrend:   trendToDTO(i.DailyTrend),
		MonthlyTrend: trendToDTO(i.MonthlyTrend),
		Categories:   categoriesToDTO(i.Categories),
		Highlights:   highlights,
	}
}

func GoalProgressToDTO(p GoalProgress) GoalProgressDTO {
	return GoalProgressDTO{
		Goal:                 goal.GoalToDTO(p.Goal),
		Progress:             p.Progress,
		TotalExpenses:        p.TotalExpenses,
		DaysLeft:             p.DaysLeft,
		WeeksLeft:            p.WeeksLeft,
		MonthsLeft:           p.MonthsLeft,
		WeeklySavingsNeeded:  p.WeeklySavingsNeeded,
		MonthlySavingsNeeded: p.MonthlySavingsNeeded,
		Status:               p.Status,
		StatusLabel:          p.Status.Label(),
	}
}

func goalsProgressToDTO(progress []GoalProgress) []GoalProgressDTO {
	dtos := make([]GoalProgressDTO, 0, len(progress))
	for _, p := range progress {
		dtos = append(dtos, GoalProgressToDTO(p))
	}
	return dtos
}

func totalsToDTO(t Totals) TotalsDTO {
	return TotalsDTO{Daily: t.Daily, Weekly: t.Weekly, Monthly: t.Monthly, Yearly: t.Yearly}
}

func limitStatusToDTO(s LimitStatus) LimitStatusDTO {
	return LimitStatusDTO{Total: s.Total, Limit: s.Limit, Set: s.Set, Over: s.Over, Percent: s.Percent}
}

func limitsToDTO(r LimitReport) LimitReportDTO {
	return LimitReportDTO{
		Daily:   limitStatusToDTO(r.Daily),
		Weekly:  limitStatusToDTO(r.Weekly),
		Monthly: limitStatusToDTO(r.Monthly),
		Yearly:  limitStatusToDTO(r.Yearly),
	}
}

func categoriesToDTO(categories []CategoryAmount) []CategoryAmountDTO {
	dtos := make([]CategoryAmountDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, CategoryAmountDTO{Category: c.Category, Amount: c.Amount})
	}
	return dtos
}

func trendToDTO(trend []TrendPoint) []TrendPointDTO {
	dtos := make([]TrendPointDTO, 0, len(trend))
	for _, p := range trend {
		dtos = append(dtos, TrendPointDTO{Label: p.Label, Start: p.Start, Amount: p.Amount})
	}
	return dtos
}
