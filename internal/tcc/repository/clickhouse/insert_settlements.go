package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
)

// InsertSettlements stores settlement audit records.
func (r *Repository) InsertSettlements(ctx context.Context, settlements []model.Settlement) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_settlements", err, start)
	}()

	if len(settlements) == 0 {
		return nil
	}

	const query = `
INSERT INTO tcc_settlements (
	tx_id,
	outcome,
	reason,
	message,
	result_ref,
	result_hash,
	settlement_tx_hash,
	block_number,
	settled_at
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare settlements batch: %w", err)
	}

	for _, s := range settlements {
		if err = batch.Append(
			s.TxID.Hex(),
			string(s.Outcome),
			string(s.Reason),
			s.Message,
			s.ResultRef,
			s.ResultHash.Hex(),
			s.TxHash.Hex(),
			s.BlockNumber,
			s.SettledAt.UTC(),
		); err != nil {
			return fmt.Errorf("append settlement: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert settlements: %w", err)
	}
	return nil
}
