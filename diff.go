package safeharbor

import (
	"slices"
	"strings"
)

// ChainDiff is the chain-level outcome of DiffChains.
type ChainDiff struct {
	// ChainsToAdd are desired chain names absent on chain, in desired order.
	ChainsToAdd []string

	// ChainsToRemove are on-chain chain names absent from the desired
	// state, in on-chain order.
	ChainsToRemove []string

	// Excluded are desired chain names the directory cannot resolve. They
	// take no part in this run.
	Excluded []string

	Warnings []Warning
}

// Removing returns true if the chain is scheduled for removal.
func (d *ChainDiff) Removing(name string) bool {
	return slices.Contains(d.ChainsToRemove, name)
}

// IsExcluded returns true if the chain was left out of this run.
func (d *ChainDiff) IsExcluded(name string) bool {
	return slices.Contains(d.Excluded, name)
}

// DiffChains computes the chains to add and remove to turn current into
// desired. Desired chains the directory cannot resolve are excluded entirely
// and reported as WarningUnknownChain. Chains present on both sides are left
// to the account-level diff.
func DiffChains(current, desired *ChainStateMap, dir *ChainDirectory) ChainDiff {
	diff := ChainDiff{
		ChainsToAdd:    []string{},
		ChainsToRemove: []string{},
	}

	known := make(map[string]struct{}, desired.Len())
	for _, name := range desired.Names() {
		if !dir.Has(name) {
			diff.Excluded = append(diff.Excluded, name)
			diff.Warnings = append(diff.Warnings, Warning{
				Kind:    WarningUnknownChain,
				Chain:   name,
				Message: "Unknown chain details in desired state; add the chain to the chain directory to cover it",
			})
			continue
		}
		known[name] = struct{}{}
	}

	for _, name := range current.Names() {
		if _, ok := known[name]; ok {
			continue
		}
		if slices.Contains(diff.Excluded, name) {
			continue
		}
		diff.ChainsToRemove = append(diff.ChainsToRemove, name)
	}

	for _, name := range desired.Names() {
		if _, ok := known[name]; !ok {
			continue
		}
		if !current.Has(name) {
			diff.ChainsToAdd = append(diff.ChainsToAdd, name)
		}
	}

	return diff
}

// recoveryMismatches compares the on-chain recovery address of every chain
// present in both states with the directory's address.
func recoveryMismatches(current, desired *ChainStateMap, dir *ChainDirectory) []Warning {
	var warnings []Warning
	for _, name := range current.Names() {
		if !desired.Has(name) {
			continue
		}
		record, _ := current.Get(name)
		expected, _ := dir.RecoveryAddress(name)
		if record.RecoveryAddress == "" || expected == "" {
			continue
		}
		if !strings.EqualFold(record.RecoveryAddress, expected) {
			warnings = append(warnings, Warning{
				Kind:     WarningRecoveryMismatch,
				Chain:    name,
				Message:  "Asset recovery address mismatch",
				Onchain:  record.RecoveryAddress,
				Expected: expected,
			})
		}
	}
	return warnings
}
