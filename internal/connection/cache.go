// Package connection keeps one shared database handle per process.
//
// A Cache lazily connects on first use, lets concurrent callers share a
// single in-flight attempt, and drops its handle when the driver reports
// that the connection was lost so the next caller reconnects.
package connection

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/GameXcalibur/LynxATS/internal/logger"
	"github.com/GameXcalibur/LynxATS/internal/metrics"
)

// State of the cached connection. Values match the numeric states reported
// by the health endpoint.
type State int32

const (
	Disconnected State = iota
	Connected
	Connecting
	Disconnecting
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	case Connecting:
		return "connecting"
	case Disconnecting:
		return "disconnecting"
	}
	return fmt.Sprintf("state_%d", int32(s))
}

var (
	// ErrNotConfigured is returned when the backend has no connection string.
	ErrNotConfigured = errors.New("database connection string is not configured")
	// ErrClosed is returned by Acquire after Close.
	ErrClosed = errors.New("connection cache is closed")
)

// Connector opens and closes handles of one backend.
type Connector[T any] interface {
	// Validate reports ErrNotConfigured when no connection can be attempted.
	// It must not do any I/O.
	Validate() error
	// Connect dials the backend. lost may be called at any later time, from
	// any goroutine, when the driver notices the connection is gone.
	Connect(ctx context.Context, lost func(reason error)) (T, error)
	Close(ctx context.Context, handle T) error
}

// Pinger is implemented by connectors whose handles can be health checked.
type Pinger[T any] interface {
	Ping(ctx context.Context, handle T) error
}

// Cache holds at most one live handle of type T.
type Cache[T any] struct {
	backend   string
	connector Connector[T]
	timeout   time.Duration

	group singleflight.Group

	mu     sync.RWMutex
	handle T
	has    bool
	gen    uint64
	state  State
	closed bool

	// connects in flight and background closes of invalidated handles
	bg sync.WaitGroup
}

// New returns an empty cache. Nothing is dialed until the first Acquire.
// connectTimeout bounds each shared connect attempt.
func New[T any](backend string, connector Connector[T], connectTimeout time.Duration) *Cache[T] {
	return &Cache[T]{
		backend:   backend,
		connector: connector,
		timeout:   connectTimeout,
	}
}

// Backend names the storage driver behind the cache.
func (c *Cache[T]) Backend() string {
	return c.backend
}

// State returns the current connection state.
func (c *Cache[T]) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Acquire returns the cached handle, connecting first if needed.
// Concurrent callers share one connect attempt. ctx only bounds how long
// this caller waits; the attempt itself is bounded by the connect timeout.
func (c *Cache[T]) Acquire(ctx context.Context) (T, error) {
	var zero T

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return zero, ErrClosed
	}
	if c.has && c.state == Connected {
		handle := c.handle
		c.mu.RUnlock()
		return handle, nil
	}
	c.mu.RUnlock()

	if err := c.connector.Validate(); err != nil {
		return zero, err
	}

	ch := c.group.DoChan("connect", func() (interface{}, error) {
		return c.connect()
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Warm connects now instead of on the first Acquire.
func (c *Cache[T]) Warm(ctx context.Context) error {
	_, err := c.Acquire(ctx)
	return err
}

func (c *Cache[T]) connect() (T, error) {
	var zero T

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	if c.has && c.state == Connected {
		handle := c.handle
		c.mu.Unlock()
		return handle, nil
	}
	c.gen++
	gen := c.gen
	c.state = Connecting
	c.bg.Add(1)
	c.mu.Unlock()
	defer c.bg.Done()

	log.WithField("backend", c.backend).Info("connecting to database")

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	handle, err := c.connector.Connect(ctx, func(reason error) {
		c.invalidate(gen, reason)
	})

	c.mu.Lock()
	if err != nil {
		if c.gen == gen {
			c.state = Disconnected
		}
		c.mu.Unlock()

		metrics.ConnectAttempts.WithLabelValues(c.backend, "failure").Inc()
		log.WithFields(log.Fields{
			logger.ErrorTypeField: logger.ErrorTypeDb,
			"backend":             c.backend,
		}).Errorf("database connection failed: %v", err)
		return zero, errors.Wrapf(err, "connect to %s", c.backend)
	}

	if c.closed || c.gen != gen {
		closed := c.closed
		c.mu.Unlock()

		// The handle was lost or the cache closed while dialing.
		_ = c.connector.Close(ctx, handle)
		metrics.ConnectAttempts.WithLabelValues(c.backend, "discarded").Inc()
		if closed {
			return zero, ErrClosed
		}
		return zero, errors.Errorf("connection to %s lost while connecting", c.backend)
	}

	c.handle = handle
	c.has = true
	c.state = Connected
	c.mu.Unlock()

	metrics.ConnectAttempts.WithLabelValues(c.backend, "success").Inc()
	log.WithField("backend", c.backend).Info("connected to database")
	return handle, nil
}

// invalidate is a no-op unless gen is still the current generation, so late
// reports from an already replaced handle are ignored.
func (c *Cache[T]) invalidate(gen uint64, reason error) {
	var zero T

	c.mu.Lock()
	if c.closed || gen != c.gen || c.state == Disconnected {
		c.mu.Unlock()
		return
	}
	c.gen++
	stale, had := c.handle, c.has
	c.handle, c.has = zero, false
	c.state = Disconnected
	if had {
		c.bg.Add(1)
		go c.closeStale(stale)
	}
	c.mu.Unlock()

	metrics.Invalidations.WithLabelValues(c.backend).Inc()
	log.WithFields(log.Fields{
		"backend": c.backend,
		"reason":  reason,
	}).Warn("database connection invalidated")
}

func (c *Cache[T]) closeStale(handle T) {
	defer c.bg.Done()
	defer logger.Recover("close stale connection")

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	if err := c.connector.Close(ctx, handle); err != nil {
		log.WithField("backend", c.backend).Debugf("closing stale connection: %v", err)
	}
}

// current returns the live handle and its generation without connecting.
func (c *Cache[T]) current() (T, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.handle, c.gen, c.has && c.state == Connected
}

// Close disconnects the cached handle and waits, until ctx ends, for a
// connect in flight and for background closes. A handle dialed by that
// connect is closed before Close returns. Acquire fails with ErrClosed
// afterwards.
func (c *Cache[T]) Close(ctx context.Context) error {
	var zero T

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.gen++
	handle, had := c.handle, c.has
	c.handle, c.has = zero, false
	c.state = Disconnecting
	c.mu.Unlock()

	var err error
	if had {
		err = c.connector.Close(ctx, handle)
	}

	c.mu.Lock()
	c.state = Disconnected
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.bg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}

	if err != nil {
		return errors.Wrapf(err, "close %s connection", c.backend)
	}
	log.WithField("backend", c.backend).Info("disconnected from database")
	return nil
}
