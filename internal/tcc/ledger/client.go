// Package ledger implements the coordinator's view of the settlement contract
// on an EVM chain: block height and time, FundsLocked discovery, state reads,
// and signed confirm/cancel submissions.
package ledger

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
	"github.com/goodnatureofminers/tcc-settler/pkg/safe"
	"go.uber.org/ratelimit"
)

const (
	defaultGasLimit       = 300_000
	defaultReceiptTimeout = 2 * time.Minute
	defaultReceiptPoll    = time.Second
)

// Config holds the immutable inputs of a Client.
type Config struct {
	Contract       common.Address
	PrivateKey     *ecdsa.PrivateKey
	ChainID        *big.Int
	GasLimit       uint64
	ReceiptTimeout time.Duration
	ReceiptPoll    time.Duration
	// RPS bounds outgoing RPC calls per second; zero disables limiting.
	RPS int
}

// Client talks to the settlement contract through a Backend.
type Client struct {
	backend        Backend
	contract       *contract
	address        common.Address
	from           common.Address
	key            *ecdsa.PrivateKey
	signer         types.Signer
	gasLimit       uint64
	receiptTimeout time.Duration
	receiptPoll    time.Duration
	limiter        ratelimit.Limiter
	metrics        RPCMetrics

	// sendMu serializes nonce selection and submission across concurrent settlements.
	sendMu sync.Mutex
}

// NewClient constructs a ledger Client.
func NewClient(backend Backend, cfg Config, metrics RPCMetrics) (*Client, error) {
	if backend == nil {
		return nil, errors.New("ledger backend is required")
	}
	if metrics == nil {
		return nil, errors.New("ledger rpc metrics is required")
	}
	if cfg.PrivateKey == nil {
		return nil, errors.New("provider private key is required")
	}
	if cfg.ChainID == nil || cfg.ChainID.Sign() <= 0 {
		return nil, errors.New("chain id is required")
	}
	if cfg.Contract == (common.Address{}) {
		return nil, errors.New("contract address is required")
	}

	parsed, err := parseContract()
	if err != nil {
		return nil, err
	}

	c := &Client{
		backend:        backend,
		contract:       parsed,
		address:        cfg.Contract,
		from:           crypto.PubkeyToAddress(cfg.PrivateKey.PublicKey),
		key:            cfg.PrivateKey,
		signer:         types.LatestSignerForChainID(cfg.ChainID),
		gasLimit:       cfg.GasLimit,
		receiptTimeout: cfg.ReceiptTimeout,
		receiptPoll:    cfg.ReceiptPoll,
		metrics:        metrics,
	}
	if c.gasLimit == 0 {
		c.gasLimit = defaultGasLimit
	}
	if c.receiptTimeout <= 0 {
		c.receiptTimeout = defaultReceiptTimeout
	}
	if c.receiptPoll <= 0 {
		c.receiptPoll = defaultReceiptPoll
	}
	if cfg.RPS > 0 {
		c.limiter = ratelimit.New(cfg.RPS)
	} else {
		c.limiter = ratelimit.NewUnlimited()
	}
	return c, nil
}

// ProviderAddress returns the account that signs settlements.
func (c *Client) ProviderAddress() common.Address {
	return c.from
}

// ContractAddress returns the settlement contract address.
func (c *Client) ContractAddress() common.Address {
	return c.address
}

// LatestHeight returns the current block number.
func (c *Client) LatestHeight(ctx context.Context) (height uint64, err error) {
	defer c.observe("block_number", time.Now(), &err)
	c.limiter.Take()
	return c.backend.BlockNumber(ctx)
}

// LatestBlockTime returns the timestamp of the latest block in seconds.
func (c *Client) LatestBlockTime(ctx context.Context) (uint64, error) {
	return c.blockTime(ctx, nil)
}

// BlockTime returns the timestamp of block number in seconds.
func (c *Client) BlockTime(ctx context.Context, number uint64) (uint64, error) {
	return c.blockTime(ctx, new(big.Int).SetUint64(number))
}

func (c *Client) blockTime(ctx context.Context, number *big.Int) (ts uint64, err error) {
	defer c.observe("header_by_number", time.Now(), &err)
	c.limiter.Take()

	header, err := c.backend.HeaderByNumber(ctx, number)
	if err != nil {
		return 0, fmt.Errorf("get block header: %w", err)
	}
	if header == nil {
		return 0, errors.New("block header not found")
	}
	return header.Time, nil
}

// FundsLockedEvents returns the FundsLocked events emitted in [from, to], ordered by position.
func (c *Client) FundsLockedEvents(ctx context.Context, from, to uint64) (events []model.LockEvent, err error) {
	defer c.observe("filter_logs", time.Now(), &err)
	c.limiter.Take()

	logs, err := c.backend.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{c.address},
		Topics:    [][]common.Hash{{c.contract.fundsLocked.ID}},
	})
	if err != nil {
		return nil, fmt.Errorf("filter FundsLocked logs [%d, %d]: %w", from, to, err)
	}

	events = make([]model.LockEvent, 0, len(logs))
	for _, lg := range logs {
		if lg.Removed {
			continue
		}
		ev, err := c.decodeFundsLocked(lg)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].BlockNumber != events[j].BlockNumber {
			return events[i].BlockNumber < events[j].BlockNumber
		}
		return events[i].LogIndex < events[j].LogIndex
	})
	return events, nil
}

func (c *Client) decodeFundsLocked(lg types.Log) (model.LockEvent, error) {
	if len(lg.Topics) != 4 || lg.Topics[0] != c.contract.fundsLocked.ID {
		return model.LockEvent{}, fmt.Errorf("log %s/%d is not a FundsLocked event", lg.TxHash.Hex(), lg.Index)
	}

	values, err := c.contract.fundsLocked.Inputs.Unpack(lg.Data)
	if err != nil {
		return model.LockEvent{}, fmt.Errorf("unpack FundsLocked data: %w", err)
	}
	if len(values) != 2 {
		return model.LockEvent{}, fmt.Errorf("unexpected FundsLocked data fields: %d", len(values))
	}
	amount, ok := values[0].(*big.Int)
	if !ok {
		return model.LockEvent{}, fmt.Errorf("unexpected amount type %T", values[0])
	}
	rawTimeout, ok := values[1].(*big.Int)
	if !ok {
		return model.LockEvent{}, fmt.Errorf("unexpected timeout type %T", values[1])
	}
	timeout, err := safe.BigUint64(rawTimeout)
	if err != nil {
		return model.LockEvent{}, fmt.Errorf("timeout overflow: %w", err)
	}

	return model.LockEvent{
		TxID:        model.TxID(lg.Topics[1]),
		User:        common.BytesToAddress(lg.Topics[2].Bytes()),
		Service:     common.BytesToAddress(lg.Topics[3].Bytes()),
		Amount:      amount,
		Timeout:     timeout,
		BlockNumber: lg.BlockNumber,
		BlockHash:   lg.BlockHash,
		LogIndex:    lg.Index,
	}, nil
}

// GetTransaction reads the contract's record of id.
func (c *Client) GetTransaction(ctx context.Context, id model.TxID) (tx model.LedgerTransaction, err error) {
	defer c.observe("get_transaction", time.Now(), &err)

	out, err := c.call(ctx, c.contract.getTransaction, [32]byte(id))
	if err != nil {
		return model.LedgerTransaction{}, err
	}
	tuple := *abi.ConvertType(out[0], new(transactionTuple)).(*transactionTuple)

	lockTime, err := safe.BigUint64(tuple.LockTime)
	if err != nil {
		return model.LedgerTransaction{}, fmt.Errorf("lock time overflow: %w", err)
	}
	timeout, err := safe.BigUint64(tuple.Timeout)
	if err != nil {
		return model.LedgerTransaction{}, fmt.Errorf("timeout overflow: %w", err)
	}

	return model.LedgerTransaction{
		User:       tuple.User,
		Service:    tuple.Service,
		Amount:     tuple.Amount,
		State:      model.LedgerState(tuple.State),
		LockTime:   lockTime,
		Timeout:    timeout,
		ResultHash: common.Hash(tuple.ResultHash),
	}, nil
}

// ServiceBalance returns the provider's withdrawable balance held by the contract.
func (c *Client) ServiceBalance(ctx context.Context) (balance *big.Int, err error) {
	defer c.observe("service_balance", time.Now(), &err)

	out, err := c.call(ctx, c.contract.serviceBalance, c.from)
	if err != nil {
		return nil, err
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balance type %T", out[0])
	}
	return balance, nil
}

// Balance returns the provider account's native balance.
func (c *Client) Balance(ctx context.Context) (balance *big.Int, err error) {
	defer c.observe("balance_at", time.Now(), &err)
	c.limiter.Take()
	return c.backend.BalanceAt(ctx, c.from, nil)
}

// Confirm submits confirmTransaction and waits for inclusion. A non-empty
// tokenURI selects the overload that also mints a receipt token to the user.
func (c *Client) Confirm(ctx context.Context, id model.TxID, resultHash common.Hash, tokenURI string) (model.Receipt, error) {
	if tokenURI == "" {
		return c.transact(ctx, c.contract.confirm, [32]byte(id), [32]byte(resultHash))
	}
	return c.transact(ctx, c.contract.confirmWithURI, [32]byte(id), [32]byte(resultHash), tokenURI)
}

// Cancel submits cancelTransaction and waits for inclusion.
func (c *Client) Cancel(ctx context.Context, id model.TxID, reason string) (model.Receipt, error) {
	return c.transact(ctx, c.contract.cancel, [32]byte(id), reason)
}

func (c *Client) call(ctx context.Context, m abi.Method, args ...interface{}) ([]interface{}, error) {
	data, err := c.contract.pack(m, args...)
	if err != nil {
		return nil, err
	}
	c.limiter.Take()
	raw, err := c.backend.CallContract(ctx, ethereum.CallMsg{From: c.from, To: &c.address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", m.Name, err)
	}
	out, err := m.Outputs.Unpack(raw)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", m.Name, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty result from %s", m.Name)
	}
	return out, nil
}

// transact simulates, signs, submits and waits for a state-changing call.
// The simulation surfaces contract rejections (e.g. "Not timeout") before gas is spent.
// Failures before the broadcast wrap ErrNotSubmitted; a failed broadcast does not,
// since the node may have accepted the transaction anyway.
func (c *Client) transact(ctx context.Context, m abi.Method, args ...interface{}) (receipt model.Receipt, err error) {
	defer c.observe("transact_"+m.RawName, time.Now(), &err)

	data, err := c.contract.pack(m, args...)
	if err != nil {
		return model.Receipt{}, notSubmitted(err)
	}
	msg := ethereum.CallMsg{From: c.from, To: &c.address, Data: data}

	c.limiter.Take()
	if _, err = c.backend.CallContract(ctx, msg, nil); err != nil {
		if reason, ok := revertReason(err); ok {
			return model.Receipt{}, &RevertError{Method: m.RawName, Reason: reason, Err: err}
		}
		return model.Receipt{}, notSubmitted(fmt.Errorf("simulate %s: %w", m.RawName, err))
	}

	signed, err := c.send(ctx, data)
	if err != nil {
		return model.Receipt{}, err
	}

	mined, err := c.waitMined(ctx, signed.Hash())
	if err != nil {
		return model.Receipt{TxHash: signed.Hash()}, err
	}
	receipt = model.Receipt{TxHash: mined.TxHash, BlockNumber: mined.BlockNumber.Uint64()}
	if mined.Status != types.ReceiptStatusSuccessful {
		return receipt, &RevertError{
			Method: m.RawName,
			TxHash: mined.TxHash,
			Reason: c.replayRevert(ctx, msg, mined.BlockNumber),
		}
	}
	return receipt, nil
}

func (c *Client) send(ctx context.Context, data []byte) (*types.Transaction, error) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	c.limiter.Take()
	nonce, err := c.backend.PendingNonceAt(ctx, c.from)
	if err != nil {
		return nil, notSubmitted(fmt.Errorf("get nonce: %w", err))
	}
	c.limiter.Take()
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, notSubmitted(fmt.Errorf("get gas price: %w", err))
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &c.address,
		Value:    big.NewInt(0),
		Gas:      c.gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := types.SignTx(tx, c.signer, c.key)
	if err != nil {
		return nil, notSubmitted(fmt.Errorf("sign transaction: %w", err))
	}

	c.limiter.Take()
	if err = c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}
	return signed, nil
}

// waitMined polls for the receipt of hash until it appears or receiptTimeout passes.
func (c *Client) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.receiptTimeout)
	defer cancel()

	ticker := time.NewTicker(c.receiptPoll)
	defer ticker.Stop()

	var lastErr error
	for {
		c.limiter.Take()
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			lastErr = err
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrReceiptTimeout, hash.Hex(), lastErr)
			}
			return nil, fmt.Errorf("%w: %s", ErrReceiptTimeout, hash.Hex())
		case <-ticker.C:
		}
	}
}

// replayRevert re-executes a reverted call against its block to recover the reason.
func (c *Client) replayRevert(ctx context.Context, msg ethereum.CallMsg, block *big.Int) string {
	c.limiter.Take()
	_, err := c.backend.CallContract(ctx, msg, block)
	if reason, ok := revertReason(err); ok {
		return reason
	}
	return ""
}

func (c *Client) observe(operation string, started time.Time, err *error) {
	c.metrics.Observe(operation, *err, started)
}
