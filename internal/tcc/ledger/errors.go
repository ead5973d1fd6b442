package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// notTimedOutReason is the revert string the contract uses when a provider cancels too early.
const notTimedOutReason = "Not timeout"

var (
	// ErrNotTimedOut is returned when the ledger rejects a cancel because the timeout has not elapsed.
	ErrNotTimedOut = errors.New("transaction not yet timed out")
	// ErrReverted is returned when a settlement call reverts.
	ErrReverted = errors.New("settlement reverted")
	// ErrReceiptTimeout is returned when inclusion was not observed before the wait deadline.
	ErrReceiptTimeout = errors.New("settlement receipt not observed")
	// ErrNotSubmitted marks settlement failures that happened before the transaction was broadcast.
	ErrNotSubmitted = errors.New("settlement not submitted")
)

func notSubmitted(err error) error {
	return fmt.Errorf("%w: %w", ErrNotSubmitted, err)
}

// RevertError carries the decoded revert reason of a rejected settlement call.
// TxHash is zero when the revert was detected before submission.
type RevertError struct {
	Method string
	TxHash common.Hash
	Reason string
	Err    error
}

func (e *RevertError) Error() string {
	msg := fmt.Sprintf("%s reverted", e.Method)
	if e.TxHash != (common.Hash{}) {
		msg += " in " + e.TxHash.Hex()
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap exposes the classification sentinel and the transport error. A revert
// caught before submission also unwraps to ErrNotSubmitted.
func (e *RevertError) Unwrap() []error {
	sentinel := ErrReverted
	if strings.Contains(e.Reason, notTimedOutReason) {
		sentinel = ErrNotTimedOut
	}
	errs := []error{sentinel}
	if e.TxHash == (common.Hash{}) {
		errs = append(errs, ErrNotSubmitted)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// revertReason extracts the revert reason from an eth_call error. ok is false
// when err does not look like an execution revert.
func revertReason(err error) (reason string, ok bool) {
	if err == nil {
		return "", false
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if encoded, isString := dataErr.ErrorData().(string); isString {
			if raw, decodeErr := hexutil.Decode(encoded); decodeErr == nil {
				if unpacked, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
					return unpacked, true
				}
			}
		}
	}

	msg := err.Error()
	const prefix = "execution reverted"
	idx := strings.Index(msg, prefix)
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimPrefix(msg[idx+len(prefix):], ":")
	return strings.TrimSpace(rest), true
}
