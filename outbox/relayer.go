package outbox

import (
	"context"

	"go.uber.org/zap"

	"github.com/minhtrifit/hubtech-interview-api/kafka"
	"github.com/minhtrifit/hubtech-interview-api/model"
)

type Relayer struct {
	store    IStore
	producer kafka.IProducer
	logger   *zap.SugaredLogger
}

func NewRelayer(store IStore, producer kafka.IProducer, logger *zap.SugaredLogger) *Relayer {
	return &Relayer{
		store:    store,
		producer: producer,
		logger:   logger,
	}
}

// Relay pushes up to limit pending outbox rows to the broker and marks them
// done. A failed push leaves the rows pending for the next pass.
func (r *Relayer) Relay(ctx context.Context, limit int) error {
	outboxes, err := r.store.GetPending(ctx, limit)
	if err != nil {
		return err
	}
	if len(outboxes) == 0 {
		return nil
	}

	err = r.producer.Push(extractContents(outboxes))
	if err != nil {
		return err
	}

	err = r.store.MarkDone(ctx, extractIDs(outboxes))
	if err != nil {
		return err
	}

	r.logger.Infow("relayed outbox rows", "count", len(outboxes))
	return nil
}

func extractIDs(outboxes []model.Outbox) []int64 {
	var res []int64
	for _, outbox := range outboxes {
		res = append(res, outbox.ID)
	}
	return res
}

func extractContents(outboxes []model.Outbox) [][]byte {
	var res [][]byte
	for _, outbox := range outboxes {
		res = append(res, outbox.Content)
	}
	return res
}
