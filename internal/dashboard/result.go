package dashboard

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/panics"

	"github.com/GameXcalibur/LynxATS/internal/logger"
	"github.com/GameXcalibur/LynxATS/internal/metrics"
)

// Result is the outcome of one source: its data, or the empty fallback
// together with the error that caused it.
type Result[T any] struct {
	Source string
	Data   T
	Err    error
}

// Failed reports whether Data is a fallback.
func (r Result[T]) Failed() bool {
	return r.Err != nil
}

// fetch runs fn and turns an error or a panic into a failed Result
// carrying empty. It never panics.
func fetch[T any](ctx context.Context, source string, empty T, fn func(context.Context) (T, error)) Result[T] {
	var (
		data T
		err  error
		pc   panics.Catcher
	)
	pc.Try(func() {
		data, err = fn(ctx)
	})
	if r := pc.Recovered(); r != nil {
		err = r.AsError()
	}

	if err != nil {
		metrics.SourceFailures.WithLabelValues(source).Inc()
		log.WithFields(log.Fields{
			logger.ErrorTypeField: logger.ErrorTypeDashboard,
			"source":              source,
		}).Errorf("dashboard source failed, using empty result: %v", err)
		return Result[T]{Source: source, Data: empty, Err: err}
	}
	return Result[T]{Source: source, Data: data}
}
