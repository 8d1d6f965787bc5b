package safeharbor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for common failure conditions.
var (
	// ErrInvalidCalldata indicates verification input is not 0x-prefixed hex calldata.
	ErrInvalidCalldata = errors.New("safeharbor: invalid calldata, must be 0x-prefixed hex with a 4-byte selector")

	// ErrUnknownChain indicates a desired chain is missing from the chain directory.
	ErrUnknownChain = errors.New("safeharbor: chain not found in chain directory")

	// ErrInvalidAccounts indicates a new chain carries malformed accounts.
	ErrInvalidAccounts = errors.New("safeharbor: invalid accounts")

	// ErrNoSource indicates a pipeline stage has no source configured.
	ErrNoSource = errors.New("safeharbor: pipeline source not configured")

	// ErrNotAggregate indicates calldata is not a multicall aggregate call.
	ErrNotAggregate = errors.New("safeharbor: calldata is not an aggregate call")
)

// MethodNotFoundError indicates the contract doesn't have the requested method.
type MethodNotFoundError struct {
	Contract common.Address
	Method   string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("safeharbor: method %q not found in contract %s", e.Method, e.Contract.Hex())
}

// AccountValidationError reports the accounts of a new chain that lack an
// address or a defined scope.
type AccountValidationError struct {
	Chain    string
	Accounts []Account
}

func (e *AccountValidationError) Error() string {
	parts := make([]string, len(e.Accounts))
	for i, acc := range e.Accounts {
		parts[i] = fmt.Sprintf("{address:%q scope:%d}", acc.Address, uint8(acc.Scope))
	}
	return fmt.Sprintf("safeharbor: problematic accounts found in chain %s: [%s]", e.Chain, strings.Join(parts, " "))
}

func (e *AccountValidationError) Unwrap() error {
	return ErrInvalidAccounts
}

// ChainResolutionError indicates a chain name could not be resolved.
type ChainResolutionError struct {
	Chain string
	Err   error
}

func (e *ChainResolutionError) Error() string {
	return fmt.Sprintf("safeharbor: chain %q: %v", e.Chain, e.Err)
}

func (e *ChainResolutionError) Unwrap() error {
	return e.Err
}

// EncodingError indicates a failure while ABI-encoding a call.
type EncodingError struct {
	Function string
	Err      error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("safeharbor: encoding %s: %v", e.Function, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
