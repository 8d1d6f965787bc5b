package csvsource

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"

	safeharbor "github.com/branched-services/go-safeharbor"
)

// Contracts-in-scope sheet columns.
const (
	ColStatus    = "Status"
	ColChain     = "Chain"
	ColAddress   = "Address"
	ColIsFactory = "isFactory"

	// ColIsFactoryAlt is the capitalised factory column some sheets use.
	ColIsFactoryAlt = "IsFactory"

	// StatusActive marks rows that are in scope.
	StatusActive = "ACTIVE"
)

// Chain details sheet columns.
const (
	ColName            = "Name"
	ColCaip2ChainID    = "Caip2ChainId"
	ColRecoveryAddress = "AssetRecoveryAddress"
)

// NormalizeContracts groups ACTIVE rows by chain, in order of first
// appearance. Rows flagged as factories get ScopeAll, all others ScopeNone.
func NormalizeContracts(records []Record) *safeharbor.ChainStateMap {
	state := safeharbor.NewChainStateMap()
	for _, rec := range records {
		if rec[ColStatus] != StatusActive {
			continue
		}
		scope := safeharbor.ScopeNone
		if rec[ColIsFactory] == "TRUE" || rec[ColIsFactoryAlt] == "TRUE" {
			scope = safeharbor.ScopeAll
		}
		state.Append(rec[ColChain], safeharbor.Account{
			Address: rec[ColAddress],
			Scope:   scope,
		})
	}
	return state
}

// NormalizeChainDetails builds a chain directory from chain detail rows.
// Rows without a name or CAIP-2 id are skipped with a warning; a name or id
// listed twice is an error.
func NormalizeChainDetails(records []Record, logger log.Logger) (*safeharbor.ChainDirectory, error) {
	if logger == nil {
		logger = log.Root()
	}
	entries := make([]safeharbor.ChainInfo, 0, len(records))
	names := make(map[string]struct{}, len(records))
	ids := make(map[string]struct{}, len(records))
	for i, rec := range records {
		info := safeharbor.ChainInfo{
			Name:            rec[ColName],
			ChainID:         rec[ColCaip2ChainID],
			RecoveryAddress: rec[ColRecoveryAddress],
		}
		if info.Name == "" || info.ChainID == "" {
			logger.Warn("Skipping incomplete chain details row", "row", i+2, "name", info.Name, "caip2ChainId", info.ChainID)
			continue
		}
		if _, dup := names[info.Name]; dup {
			return nil, fmt.Errorf("csvsource: duplicate chain name %q in chain details", info.Name)
		}
		if _, dup := ids[info.ChainID]; dup {
			return nil, fmt.Errorf("csvsource: duplicate CAIP-2 id %q in chain details", info.ChainID)
		}
		names[info.Name] = struct{}{}
		ids[info.ChainID] = struct{}{}
		entries = append(entries, info)
	}
	return safeharbor.NewChainDirectory(entries...), nil
}
