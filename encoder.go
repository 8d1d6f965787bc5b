package safeharbor

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// SelectorSize is the length of a function selector in bytes.
const SelectorSize = 4

// Encoder turns agreement calls and multicall batches into calldata.
// Implementations must be deterministic: identical input yields identical
// output.
type Encoder interface {
	// EncodeCall encodes one agreement function call.
	EncodeCall(function string, args ...any) ([]byte, error)

	// EncodeAggregate encodes a Multicall3 aggregate call over calls.
	EncodeAggregate(calls []MulticallCall) ([]byte, error)
}

// ABIEncoder is the default Encoder, backed by the agreement and Multicall3
// ABIs.
type ABIEncoder struct {
	agreement *Contract
	multicall *Contract
}

// NewABIEncoder creates an ABIEncoder.
func NewABIEncoder() *ABIEncoder {
	return &ABIEncoder{
		agreement: NewAgreement(common.Address{}),
		multicall: NewMulticall(common.Address{}),
	}
}

// EncodeCall encodes an agreement call.
func (e *ABIEncoder) EncodeCall(function string, args ...any) ([]byte, error) {
	return e.agreement.Pack(function, args...)
}

// EncodeAggregate encodes a Multicall3 aggregate call.
func (e *ABIEncoder) EncodeAggregate(calls []MulticallCall) ([]byte, error) {
	return e.multicall.Pack(FuncAggregate, calls)
}

// DecodeAggregate decodes Multicall3 aggregate calldata into its calls.
func DecodeAggregate(data []byte) ([]MulticallCall, error) {
	method := multicallABI.Methods[FuncAggregate]
	if len(data) < SelectorSize || !bytes.Equal(data[:SelectorSize], method.ID) {
		return nil, ErrNotAggregate
	}
	values, err := method.Inputs.Unpack(data[SelectorSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAggregate, err)
	}
	calls := *abi.ConvertType(values[0], new([]MulticallCall)).(*[]MulticallCall)
	return calls, nil
}

// DecodeCall decodes agreement calldata into the function name and its
// arguments.
func DecodeCall(data []byte) (string, []any, error) {
	if len(data) < SelectorSize {
		return "", nil, ErrInvalidCalldata
	}
	method, err := agreementABI.MethodById(data[:SelectorSize])
	if err != nil {
		return "", nil, err
	}
	args, err := method.Inputs.Unpack(data[SelectorSize:])
	if err != nil {
		return "", nil, &EncodingError{Function: method.Name, Err: err}
	}
	return method.Name, args, nil
}
