package model

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Outcome is the final result of one coordinator task.
type Outcome string

const (
	OutcomeConfirmed Outcome = "confirmed"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
)

// FailureReason is a structured classification of why a settlement did not happen,
// stable enough for upstream layers to render.
type FailureReason string

const (
	ReasonNone             FailureReason = ""
	ReasonNotTimedOut      FailureReason = "not_timed_out"
	ReasonReverted         FailureReason = "reverted"
	ReasonReceiptTimeout   FailureReason = "receipt_timeout"
	ReasonSubmissionFailed FailureReason = "submission_failed"
	ReasonAlreadySettled   FailureReason = "already_settled"
	ReasonExecutorFailed   FailureReason = "executor_failed"
	ReasonExecutorError    FailureReason = "executor_error"
	ReasonConfirmFailed    FailureReason = "confirm_failed"
	ReasonTaskPanicked     FailureReason = "task_panicked"
)

// Settlement is the audit record written for every finished coordinator task.
type Settlement struct {
	TxID        TxID
	Outcome     Outcome
	Reason      FailureReason
	Message     string
	ResultRef   string
	ResultHash  common.Hash
	TxHash      common.Hash
	BlockNumber uint64
	SettledAt   time.Time
}

// TaskState is the coordinator's advisory view of a transaction, used for status reporting.
type TaskState string

const (
	TaskLocked    TaskState = "locked"
	TaskExecuting TaskState = "executing"
	TaskConfirmed TaskState = "confirmed"
	TaskCancelled TaskState = "cancelled"
	TaskFailed    TaskState = "failed"
)
