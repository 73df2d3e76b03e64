package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartTombstoneCleaner purges soft-deleted vault entries with interval
func StartTombstoneCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
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
				cutoff := time.Now().Add(-retention)
				res, err := db.ExecContext(ctx, `
                    DELETE FROM vault_entries
                     WHERE deleted = true
                       AND updated_at < $1
                `, cutoff)
				if err != nil {
					log.Error("failed to purge tombstoned entries", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("purged tombstoned entries", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
