package safeharbor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ChainDescriptor is one entry of an addChains call.
type ChainDescriptor struct {
	RecoveryAddress string    `json:"assetRecoveryAddress"`
	Accounts        []Account `json:"accounts"`
	ChainID         string    `json:"caip2ChainId"`
}

// UpdateOperation is one agreement call produced by the builder.
// UpdateOperation is immutable - WithoutCalldata returns a new instance.
type UpdateOperation struct {
	function string
	args     []any
	calldata []byte
}

// newOperation encodes function(args...) and wraps it in an UpdateOperation.
// abiArgs is what the encoder sees; args is what the operation exposes.
func newOperation(enc Encoder, function string, args []any, abiArgs ...any) (*UpdateOperation, error) {
	calldata, err := enc.EncodeCall(function, abiArgs...)
	if err != nil {
		return nil, err
	}
	return &UpdateOperation{
		function: function,
		args:     args,
		calldata: calldata,
	}, nil
}

func removeChainsOp(enc Encoder, chainIDs []string) (*UpdateOperation, error) {
	return newOperation(enc, FuncRemoveChains, []any{chainIDs}, chainIDs)
}

func addChainsOp(enc Encoder, chains []ChainDescriptor) (*UpdateOperation, error) {
	abiChains := make([]AgreementChain, len(chains))
	for i, c := range chains {
		abiChains[i] = AgreementChain{
			AssetRecoveryAddress: c.RecoveryAddress,
			Accounts:             toAgreementAccounts(c.Accounts),
			Caip2ChainId:         c.ChainID,
		}
	}
	return newOperation(enc, FuncAddChains, []any{chains}, abiChains)
}

func removeAccountsOp(enc Encoder, chainID string, addresses []string) (*UpdateOperation, error) {
	return newOperation(enc, FuncRemoveAccounts, []any{chainID, addresses}, chainID, addresses)
}

func addAccountsOp(enc Encoder, chainID string, accounts []Account) (*UpdateOperation, error) {
	return newOperation(enc, FuncAddAccounts, []any{chainID, accounts}, chainID, toAgreementAccounts(accounts))
}

// Function returns the agreement function name.
func (o *UpdateOperation) Function() string {
	return o.function
}

// Args returns a copy of the call arguments.
func (o *UpdateOperation) Args() []any {
	out := make([]any, len(o.args))
	for i, arg := range o.args {
		out[i] = cloneArg(arg)
	}
	return out
}

func cloneArg(arg any) any {
	switch v := arg.(type) {
	case []string:
		return slices.Clone(v)
	case []Account:
		return slices.Clone(v)
	case []ChainDescriptor:
		out := make([]ChainDescriptor, len(v))
		for i, c := range v {
			c.Accounts = slices.Clone(c.Accounts)
			out[i] = c
		}
		return out
	default:
		return v
	}
}

// Calldata returns a copy of the encoded call, or nil for a stripped
// operation.
func (o *UpdateOperation) Calldata() []byte {
	return bytes.Clone(o.calldata)
}

// Selector returns the 4-byte function selector, or zero for a stripped
// operation.
func (o *UpdateOperation) Selector() [4]byte {
	var sel [4]byte
	if len(o.calldata) >= SelectorSize {
		copy(sel[:], o.calldata[:SelectorSize])
	}
	return sel
}

// WithoutCalldata returns a copy of the operation with the calldata removed,
// for human review.
func (o *UpdateOperation) WithoutCalldata() *UpdateOperation {
	clone := *o
	clone.calldata = nil
	return &clone
}

// Describe returns a one-line human-readable summary of the operation.
func (o *UpdateOperation) Describe() string {
	switch o.function {
	case FuncAddAccounts:
		return fmt.Sprintf("AddAccounts - Adding %d account(s) to chain %s", len(o.args[1].([]Account)), o.args[0])
	case FuncRemoveAccounts:
		return fmt.Sprintf("RemoveAccounts for chain %s with %d accounts", o.args[0], len(o.args[1].([]string)))
	case FuncAddChains:
		var sb strings.Builder
		for _, c := range o.args[0].([]ChainDescriptor) {
			fmt.Fprintf(&sb, "%s(%d accounts) ", c.ChainID, len(c.Accounts))
		}
		return "AddChains for chains " + strings.TrimSpace(sb.String())
	case FuncRemoveChains:
		return "RemoveChains for chains " + strings.Join(o.args[0].([]string), ", ")
	default:
		return o.function
	}
}

// MarshalJSON renders the operation as {function, args, calldata}.
// Stripped operations omit calldata.
func (o *UpdateOperation) MarshalJSON() ([]byte, error) {
	out := struct {
		Function string `json:"function"`
		Args     []any  `json:"args"`
		Calldata string `json:"calldata,omitempty"`
	}{
		Function: o.function,
		Args:     o.args,
	}
	if o.calldata != nil {
		out.Calldata = hexutil.Encode(o.calldata)
	}
	return json.Marshal(out)
}
