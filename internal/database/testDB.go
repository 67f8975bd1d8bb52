package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/GameXcalibur/LynxATS/internal/config"
)

// Teardown terminates a test container.
type Teardown func(context.Context, ...testcontainers.TerminateOption) error

var (
	testMu       sync.Mutex
	testBackends = map[string]*Backend{}
	testTeardown = map[string]Teardown{}
)

// StartTestPostgres starts a PostgreSQL container and returns its DSN.
func StartTestPostgres(ctx context.Context) (string, Teardown, error) {
	var (
		dbName = "lynxats"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return "", nil, err
	}

	dbHost, err := dbContainer.Host(ctx)
	if err != nil {
		return "", dbContainer.Terminate, err
	}

	dbPort, err := dbContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	if err != nil {
		return "", dbContainer.Terminate, err
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort.Port(), dbUser, dbPwd, dbName)
	return dsn, dbContainer.Terminate, nil
}

// StartTestMongo starts a single node MongoDB container and returns its URL.
func StartTestMongo(ctx context.Context) (string, Teardown, error) {
	dbContainer, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		return "", nil, err
	}

	url, err := mongoURL(ctx, dbContainer)
	if err != nil {
		return "", dbContainer.Terminate, err
	}
	return url, dbContainer.Terminate, nil
}

// mongoURL builds the URL of a running container. The mapped port can
// change when the container is restarted.
func mongoURL(ctx context.Context, dbContainer *mongodb.MongoDBContainer) (string, error) {
	dbHost, err := dbContainer.Host(ctx)
	if err != nil {
		return "", err
	}

	dbPort, err := dbContainer.MappedPort(ctx, nat.Port("27017/tcp"))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("mongodb://%s:%s", dbHost, dbPort.Port()), nil
}

// GetTestBackend starts a container for driver, once per process, and
// returns a backend connected to it with every collection empty.
func GetTestBackend(ctx context.Context, driver string) (Teardown, *Backend, error) {
	testMu.Lock()
	defer testMu.Unlock()

	if b, ok := testBackends[driver]; ok {
		return testTeardown[driver], b, b.Store.Drop(ctx)
	}

	cfg := config.DBConfig{
		Driver:         driver,
		MongoDatabase:  "lynxats_test",
		MaxPoolSize:    10,
		ConnectTimeout: 30 * time.Second,
	}

	var (
		teardown Teardown
		err      error
	)
	switch driver {
	case config.DriverMongo:
		cfg.MongoURL, teardown, err = StartTestMongo(ctx)
	case config.DriverPostgres:
		cfg.PostgresDSN, teardown, err = StartTestPostgres(ctx)
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", driver)
	}
	if err != nil {
		return teardown, nil, err
	}

	b, err := Open(cfg)
	if err != nil {
		return teardown, nil, err
	}
	if err := b.Store.Drop(ctx); err != nil {
		return teardown, nil, err
	}

	testBackends[driver] = b
	testTeardown[driver] = teardown
	return teardown, b, nil
}
