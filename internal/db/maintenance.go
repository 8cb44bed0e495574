package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartMaintenance runs periodic housekeeping on the vault database: a WAL
// checkpoint so the write-ahead log does not grow unbounded, followed by
// PRAGMA optimize. It returns immediately; the loop stops when ctx is done.
func StartMaintenance(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
					log.Error("wal checkpoint failed", zap.Error(err))
					continue
				}
				if _, err := db.ExecContext(ctx, `PRAGMA optimize`); err != nil {
					log.Error("optimize failed", zap.Error(err))
					continue
				}
				log.Debug("database maintenance completed")
			}
		}
	}()
}
