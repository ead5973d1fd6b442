package ledger

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// contractABIJSON covers the subset of the settlement contract the coordinator calls.
const contractABIJSON = `[
  {"type":"event","name":"FundsLocked","anonymous":false,"inputs":[
    {"name":"txId","type":"bytes32","indexed":true},
    {"name":"user","type":"address","indexed":true},
    {"name":"service","type":"address","indexed":true},
    {"name":"amount","type":"uint256","indexed":false},
    {"name":"timeout","type":"uint256","indexed":false}]},
  {"type":"event","name":"TransactionConfirmed","anonymous":false,"inputs":[
    {"name":"txId","type":"bytes32","indexed":true},
    {"name":"resultHash","type":"bytes32","indexed":false},
    {"name":"timestamp","type":"uint256","indexed":false}]},
  {"type":"event","name":"TransactionCancelled","anonymous":false,"inputs":[
    {"name":"txId","type":"bytes32","indexed":true},
    {"name":"reason","type":"string","indexed":false},
    {"name":"timestamp","type":"uint256","indexed":false}]},
  {"type":"function","name":"confirmTransaction","stateMutability":"nonpayable","inputs":[
    {"name":"txId","type":"bytes32"},
    {"name":"resultHash","type":"bytes32"}],"outputs":[]},
  {"type":"function","name":"confirmTransaction","stateMutability":"nonpayable","inputs":[
    {"name":"txId","type":"bytes32"},
    {"name":"resultHash","type":"bytes32"},
    {"name":"tokenURI","type":"string"}],"outputs":[]},
  {"type":"function","name":"cancelTransaction","stateMutability":"nonpayable","inputs":[
    {"name":"txId","type":"bytes32"},
    {"name":"reason","type":"string"}],"outputs":[]},
  {"type":"function","name":"getTransaction","stateMutability":"view","inputs":[
    {"name":"txId","type":"bytes32"}],"outputs":[
    {"name":"","type":"tuple","components":[
      {"name":"user","type":"address"},
      {"name":"service","type":"address"},
      {"name":"amount","type":"uint256"},
      {"name":"state","type":"uint8"},
      {"name":"lockTime","type":"uint256"},
      {"name":"timeout","type":"uint256"},
      {"name":"resultHash","type":"bytes32"}]}]},
  {"type":"function","name":"serviceBalances","stateMutability":"view","inputs":[
    {"name":"","type":"address"}],"outputs":[
    {"name":"","type":"uint256"}]}
]`

const (
	sigConfirm        = "confirmTransaction(bytes32,bytes32)"
	sigConfirmWithURI = "confirmTransaction(bytes32,bytes32,string)"
	sigCancel         = "cancelTransaction(bytes32,string)"
	sigGetTransaction = "getTransaction(bytes32)"
	sigServiceBalance = "serviceBalances(address)"

	eventFundsLocked = "FundsLocked"
)

// contract holds the parsed ABI with overloads resolved by signature, since
// go-ethereum renames the second confirmTransaction overload.
type contract struct {
	abi            abi.ABI
	fundsLocked    abi.Event
	confirm        abi.Method
	confirmWithURI abi.Method
	cancel         abi.Method
	getTransaction abi.Method
	serviceBalance abi.Method
}

// transactionTuple matches the component layout of getTransaction's output.
type transactionTuple struct {
	User       common.Address
	Service    common.Address
	Amount     *big.Int
	State      uint8
	LockTime   *big.Int
	Timeout    *big.Int
	ResultHash [32]byte
}

func parseContract() (*contract, error) {
	parsed, err := abi.JSON(strings.NewReader(contractABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse contract abi: %w", err)
	}

	c := &contract{abi: parsed}
	ev, ok := parsed.Events[eventFundsLocked]
	if !ok {
		return nil, fmt.Errorf("event %s missing from abi", eventFundsLocked)
	}
	c.fundsLocked = ev

	targets := map[string]*abi.Method{
		sigConfirm:        &c.confirm,
		sigConfirmWithURI: &c.confirmWithURI,
		sigCancel:         &c.cancel,
		sigGetTransaction: &c.getTransaction,
		sigServiceBalance: &c.serviceBalance,
	}
	for _, m := range parsed.Methods {
		if dst, ok := targets[m.Sig]; ok {
			*dst = m
			delete(targets, m.Sig)
		}
	}
	for sig := range targets {
		return nil, fmt.Errorf("method %s missing from abi", sig)
	}
	return c, nil
}

func (c *contract) pack(m abi.Method, args ...interface{}) ([]byte, error) {
	input, err := m.Inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", m.Sig, err)
	}
	return append(append([]byte{}, m.ID...), input...), nil
}
