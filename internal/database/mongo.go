package database

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/event"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/GameXcalibur/LynxATS/internal/connection"
	"github.com/GameXcalibur/LynxATS/internal/store/mongostore"
)

const serverSelectionTimeout = 10 * time.Second

// MongoConnector dials MongoDB. The server monitor reports to the
// connection cache when the deployment as a whole becomes unusable; a
// single unreachable replica set member is not a loss.
type MongoConnector struct {
	URL         string
	Database    string
	MaxPoolSize uint64
}

var (
	_ connection.Connector[*mongo.Client] = (*MongoConnector)(nil)
	_ connection.Pinger[*mongo.Client]    = (*MongoConnector)(nil)
)

// Server kinds that accept writes, as reported in topology descriptions.
var writableKinds = map[string]bool{
	"Standalone":   true,
	"RSPrimary":    true,
	"Mongos":       true,
	"LoadBalancer": true,
}

// writable reports whether any server of the topology accepts writes.
func writable(desc event.TopologyDescription) bool {
	for _, srv := range desc.Servers {
		if writableKinds[srv.Kind] {
			return true
		}
	}
	return false
}

func (m *MongoConnector) Validate() error {
	if m.URL == "" {
		return errors.Wrap(connection.ErrNotConfigured, "MONGODB_URL is empty")
	}
	return nil
}

func (m *MongoConnector) Connect(ctx context.Context, lost func(error)) (*mongo.Client, error) {
	// Events before the client is handed out are not losses.
	var live atomic.Bool
	monitor := &event.ServerMonitor{
		TopologyDescriptionChanged: func(e *event.TopologyDescriptionChangedEvent) {
			if live.Load() && writable(e.PreviousDescription) && !writable(e.NewDescription) {
				lost(errors.Errorf("no writable server in %s topology", e.NewDescription.Kind))
			}
		},
		TopologyClosed: func(*event.TopologyClosedEvent) {
			if live.Load() {
				lost(errors.New("topology closed"))
			}
		},
	}

	opts := options.Client().
		ApplyURI(m.URL).
		SetMaxPoolSize(m.MaxPoolSize).
		SetServerSelectionTimeout(serverSelectionTimeout).
		SetServerMonitor(monitor)
	if deadline, ok := ctx.Deadline(); ok {
		opts.SetConnectTimeout(time.Until(deadline))
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	if err := mongostore.EnsureIndexes(ctx, client.Database(m.Database)); err != nil {
		log.Warnf("mongo indexes not ensured: %v", err)
	}
	live.Store(true)
	return client, nil
}

func (m *MongoConnector) Close(ctx context.Context, client *mongo.Client) error {
	return client.Disconnect(ctx)
}

func (m *MongoConnector) Ping(ctx context.Context, client *mongo.Client) error {
	return client.Ping(ctx, readpref.Primary())
}
