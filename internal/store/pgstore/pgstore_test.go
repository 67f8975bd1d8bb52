package pgstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"github.com/GameXcalibur/LynxATS/internal/config"
	"github.com/GameXcalibur/LynxATS/internal/database"
	"github.com/GameXcalibur/LynxATS/internal/store/storetest"
)

func TestStore_Conformance(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	teardown, backend, err := database.GetTestBackend(ctx, config.DriverPostgres)
	if teardown != nil {
		defer func() { _ = teardown(ctx) }()
	}
	require.NoError(t, err)
	defer backend.Close(ctx)

	storetest.Run(t, backend.Store)
}
