package safeharbor

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
)

// WarningKind classifies a non-fatal finding.
type WarningKind uint8

const (
	// WarningUnknownChain is a desired chain missing from the chain directory.
	WarningUnknownChain WarningKind = iota

	// WarningUnknownChainID is an on-chain CAIP-2 id missing from the chain directory.
	WarningUnknownChainID

	// WarningRecoveryMismatch is an on-chain recovery address that differs
	// from the directory's.
	WarningRecoveryMismatch

	// WarningUnresolvedChain is an on-chain chain with no CAIP-2 id to act on.
	WarningUnresolvedChain
)

// Category returns "integrity" for recovery mismatches and "data-quality"
// for everything else.
func (k WarningKind) Category() string {
	if k == WarningRecoveryMismatch {
		return "integrity"
	}
	return "data-quality"
}

func (k WarningKind) String() string {
	switch k {
	case WarningUnknownChain:
		return "unknown-chain"
	case WarningUnknownChainID:
		return "unknown-chain-id"
	case WarningRecoveryMismatch:
		return "recovery-mismatch"
	case WarningUnresolvedChain:
		return "unresolved-chain"
	default:
		return fmt.Sprintf("warning(%d)", uint8(k))
	}
}

// Warning is a tolerated anomaly found while reconciling.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	Chain    string      `json:"chain"`
	Message  string      `json:"message"`
	Onchain  string      `json:"onchain,omitempty"`
	Expected string      `json:"expected,omitempty"`
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Kind.Category(), w.Chain, w.Message)
}

// Log writes the warning to the logger at warn level.
func (w Warning) Log(logger log.Logger) {
	ctx := []any{"kind", w.Kind.Category(), "warning", w.Kind.String(), "chain", w.Chain}
	if w.Kind == WarningRecoveryMismatch {
		ctx = append(ctx, "onchain", w.Onchain, "expected", w.Expected)
	}
	logger.Warn(w.Message, ctx...)
}
