package stats

import (
	"bytes"
	"encoding/csv"

	"github.com/pocketledger/pocketledger/pkg/money"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderInsights(insights Insights) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

func (t *CsvStatsRendererImpl) RenderInsights(insights Insights) (string, error) {
	data := make([][]string, 0, 16+len(insights.Categories)+len(insights.DailyTrend)+len(insights.MonthlyTrend))

	data = append(data,
		[]string{"Period", "Total (" + insights.Currency + ")", "Limit", "Used %"},
		periodRow("Today", insights.Limits.Daily),
		periodRow("This week", insights.Limits.Weekly),
		periodRow("This month", insights.Limits.Monthly),
		periodRow("This year", insights.Limits.Yearly),
	)

	data = append(data, []string{"Category", "Amount"})
	for _, c := range insights.Categories {
		data = append(data, []string{c.Category, amountToString(c.Amount)})
	}

	data = append(data, []string{"Day", "Amount"})
	for _, p := range insights.DailyTrend {
		data = append(data, []string{p.Label, amountToString(p.Amount)})
	}

	data = append(data, []string{"Month", "Amount"})
	for _, p := range insights.MonthlyTrend {
		data = append(data, []string{p.Label, amountToString(p.Amount)})
	}

	highlights := insights.Highlights
	topCategory := []string{"Top category", "", ""}
	if highlights.TopCategory != nil {
		topCategory = []string{"Top category", highlights.TopCategory.Category, amountToString(highlights.TopCategory.Amount)}
	}
	data = append(data,
		[]string{"Highlight", "Value"},
		[]string{"Highest expense", nullAmountToString(highlights.HighestExpense)},
		[]string{"Average daily spend", amountToString(highlights.AverageDailySpend)},
		topCategory,
	)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func periodRow(name string, status LimitStatus) []string {
	row := []string{name, amountToString(status.Total), "", ""}
	if status.Set {
		row[2] = amountToString(status.Limit)
		row[3] = nullAmountToString(status.Percent)
	}
	return row
}

func amountToString(amount decimal.Decimal) string {
	return amount.StringFixed(money.Places)
}

func nullAmountToString(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return ""
	}
	return amountToString(amount.Decimal)
}
