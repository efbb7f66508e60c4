package stats

import (
	"context"
	"sync"
	"time"

	"github.com/pocketledger/pocketledger/internal/event_bus"
	"github.com/pocketledger/pocketledger/pkg/kvstore"
	"github.com/pocketledger/pocketledger/pkg/money"
	"github.com/pocketledger/pocketledger/pkg/refresh"
	log "github.com/sirupsen/logrus"
)

// LimitWatcher keeps the latest LimitReport and logs whenever a period goes
// over or comes back under its limit.
type LimitWatcher struct {
	service  StatsService
	currency string
	loop     *refresh.Loop

	mu      sync.RWMutex
	report  LimitReport
	checked bool
}

func NewLimitWatcher(service StatsService, currency string, interval time.Duration, bus *event_bus.EventBus) *LimitWatcher {
	w := &LimitWatcher{service: service, currency: currency}
	w.loop = refresh.New("limits", interval, bus, w.check, kvstore.KeyTransactions, kvstore.KeySpendingLimits)
	return w
}

func (w *LimitWatcher) Start(ctx context.Context) error {
	return w.loop.Start(ctx)
}

func (w *LimitWatcher) Stop() {
	w.loop.Stop()
}

// Status returns the last computed report and whether one was computed yet.
func (w *LimitWatcher) Status() (LimitReport, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.report, w.checked
}

func (w *LimitWatcher) check(ctx context.Context) error {
	report, err := w.service.GetLimitReport(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	previous, checked := w.report, w.checked
	w.report, w.checked = report, true
	w.mu.Unlock()

	w.logTransition("daily", previous.Daily, report.Daily, checked)
	w.logTransition("weekly", previous.Weekly, report.Weekly, checked)
	w.logTransition("monthly", previous.Monthly, report.Monthly, checked)
	w.logTransition("yearly", previous.Yearly, report.Yearly, checked)
	return nil
}

func (w *LimitWatcher) logTransition(period string, previous, current LimitStatus, checked bool) {
	wasOver := checked && previous.Over
	switch {
	case current.Over && !wasOver:
		log.Warnf("%s spending limit exceeded: %s of %s", period,
			money.Format(current.Total, w.currency), money.Format(current.Limit, w.currency))
	case !current.Over && wasOver:
		log.Infof("%s spending is back under the limit", period)
	}
}
