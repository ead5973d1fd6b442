package main

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const placeholderKey = "your_service_provider_private_key"

type Config struct {
	RPCURL              string        `long:"rpc-url" env:"TCC_RPC_URL" default:"https://testnet-rpc.monad.xyz" description:"ledger JSON-RPC endpoint"`
	Network             string        `long:"network" env:"TCC_NETWORK" default:"monad-testnet" description:"network label for metrics and logs"`
	ContractAddress     string        `long:"contract-address" env:"TCC_CONTRACT_ADDRESS" default:"0x8AA865E227346122E734c7A4df5836Fd2Ab48218" description:"settlement contract address"`
	ServicePrivateKey   string        `long:"service-private-key" env:"TCC_SERVICE_PRIVATE_KEY" required:"true" description:"hex private key of the service provider"`
	ChainID             int64         `long:"chain-id" env:"TCC_CHAIN_ID" default:"0" description:"chain id, 0 queries the node"`
	PollInterval        time.Duration `long:"poll-interval" env:"TCC_POLL_INTERVAL" default:"5s" description:"event poll interval"`
	MaxBlockRange       uint64        `long:"max-block-range" env:"TCC_MAX_BLOCK_RANGE" default:"100" description:"max blocks per log query beyond the first"`
	CancelBuffer        time.Duration `long:"cancel-buffer" env:"TCC_CANCEL_BUFFER" default:"1s" description:"extra wait after the ledger timeout before cancelling"`
	ReceiptTimeout      time.Duration `long:"receipt-timeout" env:"TCC_RECEIPT_TIMEOUT" default:"2m" description:"max wait for settlement inclusion"`
	RPCRPS              int           `long:"rpc-rps" env:"TCC_RPC_RPS" default:"20" description:"ledger RPC calls per second, 0 disables limiting"`
	GasLimit            uint64        `long:"gas-limit" env:"TCC_GAS_LIMIT" default:"300000" description:"gas limit for settlement transactions"`
	TokenURIPrefix      string        `long:"token-uri-prefix" env:"TCC_TOKEN_URI_PREFIX" default:"ipfs://" description:"prefix of the minted token URI on confirm, empty disables minting"`
	ExecutorDelay       time.Duration `long:"executor-delay" env:"TCC_EXECUTOR_DELAY" default:"10s" description:"simulated generation time"`
	ExecutorSuccessRate float64       `long:"executor-success-rate" env:"TCC_EXECUTOR_SUCCESS_RATE" default:"0.7" description:"simulated generation success probability"`
	ClickhouseDSN       string        `long:"clickhouse-dsn" env:"TCC_CLICKHOUSE_DSN" description:"clickhouse dsn for the settlement audit log, empty disables it"`
	MetricsAddr         string        `long:"metrics-addr" env:"TCC_METRICS_ADDR" default:":2112" description:"prometheus metrics address"`
	HTTPAddr            string        `long:"http-addr" env:"TCC_HTTP_ADDR" default:":8080" description:"status http address"`
	GRPCAddr            string        `long:"grpc-addr" env:"TCC_GRPC_ADDR" default:":8000" description:"grpc health address"`
	ShutdownGrace       time.Duration `long:"shutdown-grace" env:"TCC_SHUTDOWN_GRACE" default:"30s" description:"max wait for in-flight settlements on shutdown"`
	LogJSON             bool          `long:"log-json" env:"TCC_LOG_JSON" description:"production json logging"`
}

func (c Config) validate() error {
	var errs []error
	if c.RPCURL == "" {
		errs = append(errs, errors.New("rpc url is required"))
	}
	if !common.IsHexAddress(c.ContractAddress) {
		errs = append(errs, fmt.Errorf("invalid contract address %q", c.ContractAddress))
	}
	if c.ServicePrivateKey == "" || strings.Contains(c.ServicePrivateKey, placeholderKey) {
		errs = append(errs, errors.New("service private key is not configured"))
	}
	if c.ChainID < 0 {
		errs = append(errs, errors.New("chain id must not be negative"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("poll interval must be positive"))
	}
	if c.MaxBlockRange == 0 {
		errs = append(errs, errors.New("max block range must be positive"))
	}
	if c.CancelBuffer < 0 {
		errs = append(errs, errors.New("cancel buffer must not be negative"))
	}
	if c.ExecutorSuccessRate < 0 || c.ExecutorSuccessRate > 1 {
		errs = append(errs, fmt.Errorf("executor success rate %v outside [0, 1]", c.ExecutorSuccessRate))
	}
	return errors.Join(errs...)
}

func (c Config) privateKey() (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(c.ServicePrivateKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse service private key: %w", err)
	}
	return key, nil
}
