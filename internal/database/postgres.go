package database

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	// pgx database/sql driver used by gorm's postgres dialector
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GameXcalibur/LynxATS/internal/connection"
	"github.com/GameXcalibur/LynxATS/internal/model"
)

// PostgresConnector opens gorm over pgx and migrates the schema.
// Postgres has no push notification of a lost server, so the cache relies
// on the watchdog for this backend.
type PostgresConnector struct {
	DSN         string
	MaxPoolSize uint64
}

var (
	_ connection.Connector[*gorm.DB] = (*PostgresConnector)(nil)
	_ connection.Pinger[*gorm.DB]    = (*PostgresConnector)(nil)
)

func (p *PostgresConnector) Validate() error {
	if p.DSN == "" {
		return errors.Wrap(connection.ErrNotConfigured, "DB_CONNECTION_STR is empty")
	}
	return nil
}

func (p *PostgresConnector) Connect(ctx context.Context, _ func(error)) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(p.DSN), &gorm.Config{
		Logger: gormlogger.New(log.StandardLogger(), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	if gin.IsDebugging() {
		gdb = gdb.Debug()
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(int(p.MaxPoolSize))

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if err := gdb.WithContext(ctx).AutoMigrate(model.MigrateAble...); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "failed to migrate database")
	}
	return gdb, nil
}

func (p *PostgresConnector) Close(_ context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (p *PostgresConnector) Ping(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
