package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/event"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/GameXcalibur/LynxATS/internal/config"
	"github.com/GameXcalibur/LynxATS/internal/connection"
	"github.com/GameXcalibur/LynxATS/internal/store/mongostore"
)

func testConfig(driver string) config.DBConfig {
	return config.DBConfig{
		Driver:         driver,
		MongoDatabase:  "lynxats_test",
		MaxPoolSize:    5,
		ConnectTimeout: time.Second,
		WatchdogSpec:   "@every 1h",
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(testConfig("sqlite"))
	assert.Error(t, err)
}

func TestOpen_InvalidWatchdogSpec(t *testing.T) {
	cfg := testConfig(config.DriverMongo)
	cfg.WatchdogSpec = "whenever"

	_, err := Open(cfg)
	assert.Error(t, err)
}

func TestOpen_MissingConnectionStringFailsOnFirstUse(t *testing.T) {
	for _, driver := range []string{config.DriverMongo, config.DriverPostgres} {
		t.Run(driver, func(t *testing.T) {
			b, err := Open(testConfig(driver))
			require.NoError(t, err)
			defer b.Close(context.Background())

			assert.Equal(t, driver, b.Name())
			assert.Equal(t, connection.Disconnected, b.State())

			_, err = b.Store.GetUser(context.Background(), "nobody")
			assert.ErrorIs(t, err, connection.ErrNotConfigured)
			assert.Equal(t, connection.Disconnected, b.State())
		})
	}
}

func TestConnector_Validate(t *testing.T) {
	assert.ErrorIs(t, (&MongoConnector{}).Validate(), connection.ErrNotConfigured)
	assert.NoError(t, (&MongoConnector{URL: "mongodb://localhost:27017"}).Validate())
	assert.ErrorIs(t, (&PostgresConnector{}).Validate(), connection.ErrNotConfigured)
	assert.NoError(t, (&PostgresConnector{DSN: "host=localhost"}).Validate())
}

func TestBackend_ConnectsOnFirstUse(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)

	for _, driver := range []string{config.DriverMongo, config.DriverPostgres} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			_, b, err := GetTestBackend(ctx, driver)
			require.NoError(t, err)

			assert.Equal(t, connection.Connected, b.State())
			n, err := b.Store.CountComments(ctx, "")
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestWarm_NotConfigured(t *testing.T) {
	b, err := Open(testConfig(config.DriverMongo))
	require.NoError(t, err)
	defer b.Close(context.Background())

	assert.ErrorIs(t, b.Warm(context.Background()), connection.ErrNotConfigured)
	assert.Equal(t, connection.Disconnected, b.State())
}

func TestWritable(t *testing.T) {
	server := func(kind string) event.ServerDescription {
		return event.ServerDescription{Kind: kind}
	}

	tests := []struct {
		name    string
		servers []event.ServerDescription
		want    bool
	}{
		{"standalone", []event.ServerDescription{server("Standalone")}, true},
		{"primary with a secondary down", []event.ServerDescription{server("RSPrimary"), server("RSSecondary"), server("Unknown")}, true},
		{"one of two routers down", []event.ServerDescription{server("Mongos"), server("Unknown")}, true},
		{"secondaries only", []event.ServerDescription{server("RSSecondary"), server("RSSecondary")}, false},
		{"all unknown", []event.ServerDescription{server("Unknown")}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, writable(event.TopologyDescription{Servers: tt.servers}))
		})
	}
}

func TestMongoConnector_ReportsLostDeployment(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	dbContainer, err := mongodb.Run(ctx, "mongo:7")
	if dbContainer != nil {
		defer func() { _ = dbContainer.Terminate(ctx) }()
	}
	require.NoError(t, err)

	url, err := mongoURL(ctx, dbContainer)
	require.NoError(t, err)

	connector := &MongoConnector{URL: url, Database: "lynxats_loss", MaxPoolSize: 5}
	c := connection.New[*mongo.Client](config.DriverMongo, connector, 30*time.Second)
	b, err := newBackend[*mongo.Client](config.DriverMongo, mongostore.New(c, connector.Database), c, connector, "")
	require.NoError(t, err)
	defer b.Close(ctx)

	require.NoError(t, b.Warm(ctx))
	require.Equal(t, connection.Connected, b.State())

	stopTimeout := 10 * time.Second
	require.NoError(t, dbContainer.Stop(ctx, &stopTimeout))
	require.Eventually(t, func() bool {
		return b.State() != connection.Connected
	}, 30*time.Second, 100*time.Millisecond)

	require.NoError(t, dbContainer.Start(ctx))
	url, err = mongoURL(ctx, dbContainer)
	require.NoError(t, err)
	connector.URL = url

	_, err = b.Store.CountComments(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, connection.Connected, b.State())
}
