package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
)

// SettlementsByTxID returns every audit record of a transaction, oldest first.
func (r *Repository) SettlementsByTxID(ctx context.Context, id model.TxID) (settlements []model.Settlement, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("settlements_by_txid", err, start)
	}()

	const query = `
SELECT
	outcome,
	reason,
	message,
	result_ref,
	result_hash,
	settlement_tx_hash,
	block_number,
	settled_at
FROM tcc_settlements
WHERE tx_id = ?
ORDER BY settled_at`

	rows, err := r.conn.Query(ctx, query, id.Hex())
	if err != nil {
		return nil, fmt.Errorf("query settlements: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var (
			outcome, reason, message, resultRef string
			resultHash, txHash                  string
			blockNumber                         uint64
			settledAt                           time.Time
		)
		if err = rows.Scan(&outcome, &reason, &message, &resultRef, &resultHash, &txHash, &blockNumber, &settledAt); err != nil {
			return nil, fmt.Errorf("scan settlement: %w", err)
		}
		settlements = append(settlements, model.Settlement{
			TxID:        id,
			Outcome:     model.Outcome(outcome),
			Reason:      model.FailureReason(reason),
			Message:     message,
			ResultRef:   resultRef,
			ResultHash:  common.HexToHash(resultHash),
			TxHash:      common.HexToHash(txHash),
			BlockNumber: blockNumber,
			SettledAt:   settledAt.UTC(),
		})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settlements: %w", err)
	}
	return settlements, nil
}
