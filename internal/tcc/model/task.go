package model

import (
	"math/big"

	"github.com/google/uuid"
)

// DefaultPrompt is the task description sent to the executor for every locked transaction.
const DefaultPrompt = "AI Generated Image"

// TaskRequest describes the paid work the executor must perform for one transaction.
type TaskRequest struct {
	RequestID uuid.UUID
	TxID      TxID
	User      string
	Amount    *big.Int
	Prompt    string
}

// NewTaskRequest builds a request with a fresh correlation id.
func NewTaskRequest(tx LockedTransaction, prompt string) TaskRequest {
	return TaskRequest{
		RequestID: uuid.New(),
		TxID:      tx.TxID,
		User:      tx.User.Hex(),
		Amount:    tx.Amount,
		Prompt:    prompt,
	}
}

// TaskResult is the executor's verdict. ResultRef is set only on success.
type TaskResult struct {
	Success   bool
	ResultRef string
	Error     string
}
