package safeharbor

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ResultKind discriminates the shapes a reconciliation result can take.
type ResultKind uint8

const (
	// ResultNone means the agreement is already up to date.
	ResultNone ResultKind = iota

	// ResultUpdates carries the unwrapped update list.
	ResultUpdates

	// ResultAggregate carries a multicall payload.
	ResultAggregate
)

func (k ResultKind) String() string {
	switch k {
	case ResultNone:
		return "none"
	case ResultUpdates:
		return "updates"
	case ResultAggregate:
		return "aggregate"
	default:
		return "unknown"
	}
}

// AggregatePayload is a single transaction executing every update atomically.
type AggregatePayload struct {
	// Target is the multicall contract to send the transaction to.
	Target common.Address

	// Calldata is the encoded aggregate call.
	Calldata []byte

	// Updates are the wrapped operations, in execution order.
	Updates []*UpdateOperation
}

// MarshalJSON renders the payload as {target, calldata}.
func (p *AggregatePayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Target   common.Address `json:"target"`
		Calldata string         `json:"calldata"`
	}{p.Target, hexutil.Encode(p.Calldata)})
}

// Result is the outcome of a reconciliation pass.
// Exactly one of Updates or Payload is meaningful, according to Kind.
type Result struct {
	Kind     ResultKind
	Updates  []*UpdateOperation
	Payload  *AggregatePayload
	Warnings []Warning
}

// None returns true if nothing needs to change.
func (r *Result) None() bool {
	return r == nil || r.Kind == ResultNone
}

// Operations returns the update list for either non-empty kind.
func (r *Result) Operations() []*UpdateOperation {
	switch {
	case r == nil:
		return nil
	case r.Kind == ResultAggregate && r.Payload != nil:
		return r.Payload.Updates
	default:
		return r.Updates
	}
}

// Calldata returns the aggregate calldata, or nil unless Kind is
// ResultAggregate.
func (r *Result) Calldata() []byte {
	if r == nil || r.Kind != ResultAggregate || r.Payload == nil {
		return nil
	}
	return r.Payload.Calldata
}

// WrapAsAggregate batches ops into one Multicall3 aggregate call that invokes
// the agreement once per operation, preserving order. An empty ops list
// yields a ResultNone result rather than an empty batch. A nil enc uses the
// default ABIEncoder.
func WrapAsAggregate(ops []*UpdateOperation, agreement, multicall common.Address, enc Encoder) (*Result, error) {
	if len(ops) == 0 {
		return &Result{Kind: ResultNone}, nil
	}
	if enc == nil {
		enc = defaultEncoder
	}

	calls := make([]MulticallCall, len(ops))
	for i, op := range ops {
		calls[i] = MulticallCall{
			Target:   agreement,
			CallData: op.Calldata(),
		}
	}

	calldata, err := enc.EncodeAggregate(calls)
	if err != nil {
		return nil, err
	}

	return &Result{
		Kind: ResultAggregate,
		Payload: &AggregatePayload{
			Target:   multicall,
			Calldata: calldata,
			Updates:  ops,
		},
	}, nil
}

// UpdatesResult wraps ops without aggregating them.
func UpdatesResult(ops []*UpdateOperation) *Result {
	if len(ops) == 0 {
		return &Result{Kind: ResultNone}
	}
	return &Result{Kind: ResultUpdates, Updates: ops}
}
