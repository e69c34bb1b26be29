package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"linkforge/config"
)

const (
	maxConnectAttempts = 5
	connectRetryDelay  = 3 * time.Second
)

// Connect opens the configured database and brings the schema up to
// date. Postgres is retried a few times to ride out container startup.
func Connect(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var db *gorm.DB
	var err error

	switch cfg.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
	case "postgres":
		for i := 0; i < maxConnectAttempts; i++ {
			db, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
			if err == nil {
				break
			}
			log.Warn().Err(err).Int("attempt", i+1).Int("max", maxConnectAttempts).
				Msg("failed to connect to database")
			time.Sleep(connectRetryDelay)
		}
		if err != nil {
			return nil, fmt.Errorf("connect postgres after %d attempts: %w", maxConnectAttempts, err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	log.Info().Str("driver", cfg.Driver).Msg("connected to database")

	if err := Migrate(db, cfg.Driver); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info().Msg("database migration completed")

	return db, nil
}
