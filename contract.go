package safeharbor

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract wraps a deployed contract's address and ABI.
type Contract struct {
	address common.Address
	abi     abi.ABI
}

// NewContract creates a Contract wrapper.
func NewContract(address common.Address, contractABI abi.ABI) *Contract {
	return &Contract{
		address: address,
		abi:     contractABI,
	}
}

// NewAgreement wraps a Safe Harbor agreement deployed at address.
func NewAgreement(address common.Address) *Contract {
	return NewContract(address, agreementABI)
}

// NewMulticall wraps a Multicall3 deployment at address.
func NewMulticall(address common.Address) *Contract {
	return NewContract(address, multicallABI)
}

// Address returns the contract address.
func (c *Contract) Address() common.Address {
	return c.address
}

// ABI returns the contract ABI.
func (c *Contract) ABI() abi.ABI {
	return c.abi
}

// Method returns the named ABI method.
func (c *Contract) Method(name string) (abi.Method, error) {
	method, ok := c.abi.Methods[name]
	if !ok {
		return abi.Method{}, &MethodNotFoundError{Contract: c.address, Method: name}
	}
	return method, nil
}

// Pack ABI-encodes a call to the named method: selector followed by the
// encoded arguments.
func (c *Contract) Pack(name string, args ...any) ([]byte, error) {
	if _, err := c.Method(name); err != nil {
		return nil, err
	}
	data, err := c.abi.Pack(name, args...)
	if err != nil {
		return nil, &EncodingError{Function: name, Err: err}
	}
	return data, nil
}

// ParseABI parses a JSON ABI string into an abi.ABI.
func ParseABI(abiJSON string) (abi.ABI, error) {
	return abi.JSON(strings.NewReader(abiJSON))
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) abi.ABI {
	parsed, err := ParseABI(abiJSON)
	if err != nil {
		panic(err)
	}
	return parsed
}

var (
	agreementABI = MustParseABI(AgreementABI)
	multicallABI = MustParseABI(MulticallABI)
)

// ParsedAgreementABI returns the parsed agreement ABI.
func ParsedAgreementABI() abi.ABI {
	return agreementABI
}
