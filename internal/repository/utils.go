package repository

import (
	"context"
	"strings"

	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Rollback after Commit is expected on the happy path
		if !strings.Contains(err.Error(), domain.ErrMsgTxClosed) {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
