package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/mamba-review/internal/core"
	"github.com/sevigo/mamba-review/internal/metrics"
	"github.com/sevigo/mamba-review/internal/storage"
)

type insightJob struct {
	store  storage.Store
	logger *slog.Logger
}

// NewInsightJob returns a job that logs and persists a received insight.
func NewInsightJob(store storage.Store, logger *slog.Logger) core.InsightJob {
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &insightJob{store: store, logger: logger}
}

func (j *insightJob) Run(ctx context.Context, insight *core.Insight) error {
	j.logger.InfoContext(ctx, "insight received", "payload", string(insight.Payload))

	if err := j.store.SaveInsight(ctx, insight); err != nil {
		metrics.InsightsStoredTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to store insight: %w", err)
	}
	metrics.InsightsStoredTotal.WithLabelValues("ok").Inc()
	j.logger.DebugContext(ctx, "insight stored", "id", insight.ID)
	return nil
}
