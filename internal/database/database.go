// Package database wires a storage backend: the driver connector, the
// connection cache in front of it, its watchdog and the store on top.
package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"

	"github.com/GameXcalibur/LynxATS/internal/config"
	"github.com/GameXcalibur/LynxATS/internal/connection"
	"github.com/GameXcalibur/LynxATS/internal/store"
	"github.com/GameXcalibur/LynxATS/internal/store/mongostore"
	"github.com/GameXcalibur/LynxATS/internal/store/pgstore"
)

type cache interface {
	State() connection.State
	Warm(ctx context.Context) error
	Close(ctx context.Context) error
}

type watchdog interface {
	Start()
	Stop()
}

// Backend is an opened, not yet connected, storage backend. Store calls
// go straight to the driver store.
type Backend struct {
	store.Store

	name     string
	cache    cache
	watchdog watchdog
}

// Open builds the backend selected by cfg.Driver. No connection is made
// here; the first store call connects. A missing connection string is
// therefore reported by that call, not by Open.
func Open(cfg config.DBConfig) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		connector := &MongoConnector{
			URL:         cfg.MongoURL,
			Database:    cfg.MongoDatabase,
			MaxPoolSize: cfg.MaxPoolSize,
		}
		c := connection.New[*mongo.Client](config.DriverMongo, connector, cfg.ConnectTimeout)
		return newBackend[*mongo.Client](config.DriverMongo, mongostore.New(c, cfg.MongoDatabase), c, connector, cfg.WatchdogSpec)

	case config.DriverPostgres:
		connector := &PostgresConnector{
			DSN:         cfg.PostgresDSN,
			MaxPoolSize: cfg.MaxPoolSize,
		}
		c := connection.New[*gorm.DB](config.DriverPostgres, connector, cfg.ConnectTimeout)
		return newBackend[*gorm.DB](config.DriverPostgres, pgstore.New(c), c, connector, cfg.WatchdogSpec)
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

func newBackend[T any](name string, s store.Store, c *connection.Cache[T], pinger connection.Pinger[T], spec string) (*Backend, error) {
	b := &Backend{Store: s, name: name, cache: c}
	if spec == "" {
		return b, nil
	}

	w, err := connection.NewWatchdog(c, pinger, spec)
	if err != nil {
		return nil, err
	}
	b.watchdog = w
	return b, nil
}

// Name is the driver name, "mongo" or "postgres".
func (b *Backend) Name() string {
	return b.name
}

// State is the state of the cached connection.
func (b *Backend) State() connection.State {
	return b.cache.State()
}

// Warm connects ahead of the first store call.
func (b *Backend) Warm(ctx context.Context) error {
	return b.cache.Warm(ctx)
}

// StartWatchdog starts the periodic ping, if one is configured.
func (b *Backend) StartWatchdog() {
	if b.watchdog != nil {
		b.watchdog.Start()
	}
}

// Close stops the watchdog and disconnects.
func (b *Backend) Close(ctx context.Context) error {
	if b.watchdog != nil {
		b.watchdog.Stop()
	}
	return b.cache.Close(ctx)
}
