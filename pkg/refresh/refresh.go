package refresh

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pocketledger/pocketledger/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

var ErrAlreadyRunning = errors.New("refresh loop is already running")

// LoadFunc re-fetches whatever the loop keeps fresh.
type LoadFunc func(ctx context.Context) error

// Loop calls a LoadFunc right after Start, on every interval tick and
// whenever the bus reports a change to one of the watched keys. Loads never
// overlap; triggers arriving during a load are coalesced into one.
type Loop struct {
	name     string
	interval time.Duration
	bus      *event_bus.EventBus
	load     LoadFunc
	keys     []string

	mu          sync.Mutex
	running     bool
	cancel      context.CancelFunc
	done        chan struct{}
	trigger     chan struct{}
	unsubscribe func()
}

// New creates a stopped loop. bus may be nil, the loop then only follows the
// ticker. Without keys every change notification triggers a load.
func New(name string, interval time.Duration, bus *event_bus.EventBus, load LoadFunc, keys ...string) *Loop {
	return &Loop{
		name:     name,
		interval: interval,
		bus:      bus,
		load:     load,
		keys:     keys,
		trigger:  make(chan struct{}, 1),
	}
}

func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return ErrAlreadyRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	l.running = true
	l.cancel = cancel
	l.done = make(chan struct{})
	if l.bus != nil {
		l.unsubscribe = l.bus.SubscribeRecordsChanged(func(context.Context, event_bus.RecordsChanged) error {
			l.Trigger()
			return nil
		}, l.keys...)
	}

	go l.run(loopCtx, l.done)
	log.Infof("Refresh loop %s started (interval %v)", l.name, l.interval)
	return nil
}

// Trigger requests a load as soon as the current one, if any, finished.
func (l *Loop) Trigger() {
	select {
	case l.trigger <- struct{}{}:
	default:
	}
}

// Stop unsubscribes, cancels a running load and waits for the loop to exit.
// A stopped loop can be started again.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
	l.cancel()
	done := l.done
	l.running = false
	l.mu.Unlock()

	<-done
	log.Infof("Refresh loop %s stopped", l.name)
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.refresh(ctx)
		case <-l.trigger:
			l.refresh(ctx)
		}
	}
}

func (l *Loop) refresh(ctx context.Context) {
	if err := l.load(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Warnf("Refresh loop %s failed: %v", l.name, err)
	}
}
