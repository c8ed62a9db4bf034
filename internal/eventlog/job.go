package eventlog

import (
	"context"
	"time"

	"github.com/osse101/stardust-engine/internal/logger"
	"github.com/osse101/stardust-engine/internal/worker"
)

// RetentionJob prunes the log down to the retention window each time it runs
func RetentionJob(svc Service, retention time.Duration) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		log := logger.FromContext(ctx).With(LogFieldRetention, retention.String())

		start := time.Now()
		removed, err := svc.Prune(ctx, retention)
		if err != nil {
			log.Error(LogMsgPruneFailed, LogFieldError, err)
			return err
		}
		log.Info(LogMsgPruned, LogFieldDeletedCount, removed, LogFieldDuration, time.Since(start))
		return nil
	})
}
