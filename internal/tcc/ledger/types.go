package ledger

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Backend is the subset of *ethclient.Client the ledger client uses.
	Backend interface {
		BlockNumber(ctx context.Context) (uint64, error)
		HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
		FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
		CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
		PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
		SuggestGasPrice(ctx context.Context) (*big.Int, error)
		SendTransaction(ctx context.Context, tx *types.Transaction) error
		TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
		BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	}

	// RPCMetrics records metrics for ledger RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
