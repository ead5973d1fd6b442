// Package model defines the domain types of the TCC settlement coordinator.
package model

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// AmountDecimals is the number of decimals of the ledger's native unit.
const AmountDecimals = 18

// TxID is the 32-byte transaction identifier assigned by the ledger at lock time.
type TxID [32]byte

// Hex returns the 0x-prefixed lowercase hex form.
func (id TxID) Hex() string {
	return "0x" + hex.EncodeToString(id[:])
}

// String implements fmt.Stringer.
func (id TxID) String() string {
	return id.Hex()
}

// ParseTxID parses a 0x-prefixed or bare 64-character hex string.
func ParseTxID(s string) (TxID, error) {
	var id TxID
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
	if err != nil {
		return id, fmt.Errorf("decode tx id: %w", err)
	}
	if len(raw) != len(id) {
		return id, fmt.Errorf("tx id must be %d bytes, got %d", len(id), len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// LedgerState mirrors the contract's transaction state enum, in declaration order.
type LedgerState uint8

const (
	StateIdle LedgerState = iota
	StateTrying
	StateLocked
	StateExecuting
	StateConfirmed
	StateCancelled
	StateTimedOut
)

var ledgerStateNames = [...]string{"idle", "trying", "locked", "executing", "confirmed", "cancelled", "timeout"}

func (s LedgerState) String() string {
	if int(s) < len(ledgerStateNames) {
		return ledgerStateNames[s]
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

// Terminal reports whether no further settlement is possible.
func (s LedgerState) Terminal() bool {
	return s == StateConfirmed || s == StateCancelled || s == StateTimedOut
}

// LockEvent is a decoded FundsLocked log.
type LockEvent struct {
	TxID        TxID
	User        common.Address
	Service     common.Address
	Amount      *big.Int
	Timeout     uint64
	BlockNumber uint64
	BlockHash   common.Hash
	LogIndex    uint
}

// LockedTransaction is the unit of work handed from the poller to the coordinator.
// LockTime is the timestamp of the block that carried the lock event.
type LockedTransaction struct {
	TxID     TxID
	User     common.Address
	Service  common.Address
	Amount   *big.Int
	Timeout  uint64
	LockTime uint64
}

// Deadline is the ledger time from which the provider may cancel.
func (t LockedTransaction) Deadline() uint64 {
	return t.LockTime + t.Timeout
}

// LedgerTransaction is the contract's view of a transaction, as returned by getTransaction.
type LedgerTransaction struct {
	User       common.Address
	Service    common.Address
	Amount     *big.Int
	State      LedgerState
	LockTime   uint64
	Timeout    uint64
	ResultHash common.Hash
}

// Receipt describes an included settlement transaction.
type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
}

// SameAddress compares two hex addresses case-insensitively, so checksummed and
// lowercase spellings of one account are equal.
func SameAddress(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// FormatAmount renders a smallest-unit amount in whole units, e.g. 1e17 -> "0.1".
func FormatAmount(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -AmountDecimals).String()
}
