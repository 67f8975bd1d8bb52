package connection

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/GameXcalibur/LynxATS/internal/logger"
)

const pingTimeout = 5 * time.Second

// Watchdog periodically pings the cached handle and invalidates the cache
// when the ping fails. It never dials: an empty cache is left alone.
type Watchdog[T any] struct {
	cache  *Cache[T]
	pinger Pinger[T]
	cron   *cron.Cron
}

// NewWatchdog schedules checks on spec, a robfig/cron spec such as "@every 30s".
func NewWatchdog[T any](cache *Cache[T], pinger Pinger[T], spec string) (*Watchdog[T], error) {
	w := &Watchdog[T]{
		cache:  cache,
		pinger: pinger,
		cron:   cron.New(),
	}

	if _, err := w.cron.AddFunc(spec, w.check); err != nil {
		return nil, errors.Wrapf(err, "invalid watchdog schedule %q", spec)
	}
	return w, nil
}

func (w *Watchdog[T]) Start() {
	w.cron.Start()
	log.WithField("backend", w.cache.Backend()).Info("database watchdog started")
}

// Stop waits for a running check to finish.
func (w *Watchdog[T]) Stop() {
	<-w.cron.Stop().Done()
}

func (w *Watchdog[T]) check() {
	defer logger.Recover("database watchdog")

	handle, gen, ok := w.cache.current()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := w.pinger.Ping(ctx, handle); err != nil {
		w.cache.invalidate(gen, errors.Wrap(err, "watchdog ping"))
	}
}
