package coordinator

import (
	"errors"

	"github.com/goodnatureofminers/tcc-settler/internal/tcc/ledger"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
)

var (
	// ErrAlreadySettled is returned when the ledger already holds a terminal state for the transaction.
	ErrAlreadySettled = errors.New("transaction already settled")
	ErrAlreadyStarted = errors.New("coordinator already started")
	ErrTaskPanicked   = errors.New("coordinator task panicked")
)

// Classify maps a settlement or task error to a structured failure reason.
func Classify(err error) model.FailureReason {
	switch {
	case err == nil:
		return model.ReasonNone
	case errors.Is(err, ErrAlreadySettled):
		return model.ReasonAlreadySettled
	case errors.Is(err, ErrTaskPanicked):
		return model.ReasonTaskPanicked
	case errors.Is(err, ledger.ErrNotTimedOut):
		return model.ReasonNotTimedOut
	case errors.Is(err, ledger.ErrReceiptTimeout):
		return model.ReasonReceiptTimeout
	case errors.Is(err, ledger.ErrReverted):
		return model.ReasonReverted
	default:
		return model.ReasonSubmissionFailed
	}
}
