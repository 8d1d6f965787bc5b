package onchain

import (
	safeharbor "github.com/branched-services/go-safeharbor"
)

// Normalize converts agreement details into a ChainStateMap keyed by the
// directory's chain names, in agreement order. Chains whose CAIP-2 id the
// directory does not know are dropped and reported, both in the returned
// slice and on the state itself so they travel with it through a Pipeline.
func Normalize(details *safeharbor.AgreementDetails, dir *safeharbor.ChainDirectory) (*safeharbor.ChainStateMap, []safeharbor.Warning) {
	state := safeharbor.NewChainStateMap()
	var warnings []safeharbor.Warning
	for _, chain := range details.Chains {
		name, ok := dir.ChainName(chain.Caip2ChainId)
		if !ok {
			warnings = append(warnings, safeharbor.Warning{
				Kind:    safeharbor.WarningUnknownChainID,
				Chain:   chain.Caip2ChainId,
				Message: "Unknown CAIP-2 chain id in on-chain state; chain excluded from this run",
			})
			continue
		}
		state.Set(&safeharbor.ChainRecord{
			Name:            name,
			ChainID:         chain.Caip2ChainId,
			RecoveryAddress: chain.AssetRecoveryAddress,
			Accounts:        safeharbor.FromAgreementAccounts(chain.Accounts),
		})
	}
	state.AddWarnings(warnings...)
	return state, warnings
}
