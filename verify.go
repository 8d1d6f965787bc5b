package safeharbor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Verification is the outcome of Verify.
type Verification struct {
	Matches  bool
	Expected []byte
	Provided []byte
}

// ParseCalldata decodes 0x-prefixed hex calldata. Anything without the 0x
// prefix, with odd length or shorter than a selector is ErrInvalidCalldata.
func ParseCalldata(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") {
		return nil, ErrInvalidCalldata
	}
	data, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCalldata, err)
	}
	if len(data) < SelectorSize {
		return nil, ErrInvalidCalldata
	}
	return data, nil
}

// Verify recomputes the aggregate payload from p and compares it byte for
// byte with provided. Malformed input fails before any source is contacted.
// Pipeline errors are returned rather than reported as a mismatch; a nil
// pipeline is ErrNoSource.
func Verify(ctx context.Context, provided string, p *Pipeline) (*Verification, error) {
	data, err := ParseCalldata(provided)
	if err != nil {
		return nil, err
	}

	result, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}

	expected := result.Calldata()
	return &Verification{
		Matches:  expected != nil && bytes.Equal(expected, data),
		Expected: expected,
		Provided: data,
	}, nil
}

// CallMismatch describes one differing call between two aggregate payloads.
type CallMismatch struct {
	Index    int
	Expected string
	Provided string
}

// Mismatches decodes both payloads as aggregate calls and lists the calls
// that differ. Payloads that do not decode are compared as a whole.
func (v *Verification) Mismatches() []CallMismatch {
	if v.Matches {
		return nil
	}
	expected, errE := DecodeAggregate(v.Expected)
	provided, errP := DecodeAggregate(v.Provided)
	if errE != nil || errP != nil {
		return []CallMismatch{{
			Index:    -1,
			Expected: hexutil.Encode(v.Expected),
			Provided: hexutil.Encode(v.Provided),
		}}
	}

	var out []CallMismatch
	n := max(len(expected), len(provided))
	for i := 0; i < n; i++ {
		var e, p string
		if i < len(expected) {
			e = describeCall(expected[i])
		}
		if i < len(provided) {
			p = describeCall(provided[i])
		}
		if e != p {
			out = append(out, CallMismatch{Index: i, Expected: e, Provided: p})
		}
	}
	return out
}

func describeCall(call MulticallCall) string {
	name, args, err := DecodeCall(call.CallData)
	if err != nil {
		return fmt.Sprintf("%s %s", call.Target.Hex(), hexutil.Encode(call.CallData))
	}
	return fmt.Sprintf("%s %s%v", call.Target.Hex(), name, args)
}
