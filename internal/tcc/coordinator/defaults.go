package coordinator

import "time"

const (
	DefaultPollInterval  = 5 * time.Second
	DefaultMaxBlockRange = 100
	DefaultCancelBuffer  = 1 * time.Second

	blockTimeWorkerCount = 8
)
