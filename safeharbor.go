// Package safeharbor reconciles a Safe Harbor agreement's on-chain scope
// against a declarative desired state and produces the calls needed to bring
// the agreement up to date.
//
// The agreement stores, per chain, an asset recovery address and a list of
// in-scope accounts. The desired state usually lives in a spreadsheet that is
// maintained by the protocol team. This library:
//   - Diffs the two states at chain and account granularity
//   - Builds an ordered list of agreement calls (removeChains, addChains,
//     removeAccounts, addAccounts)
//   - Batches the calls into a single Multicall3 aggregate payload
//   - Verifies an externally supplied payload against a fresh recomputation
//
// # Basic Usage
//
// Build the two states and a chain directory, then wrap the updates:
//
//	dir := safeharbor.NewChainDirectory(
//	    safeharbor.ChainInfo{Name: "ETHEREUM", ChainID: "eip155:1", RecoveryAddress: recovery},
//	)
//
//	current := safeharbor.NewChainStateMap()
//	current.Set(&safeharbor.ChainRecord{Name: "ETHEREUM", ChainID: "eip155:1", Accounts: onchain})
//
//	desired := safeharbor.NewChainStateMap()
//	desired.Set(&safeharbor.ChainRecord{Name: "ETHEREUM", Accounts: sheet})
//
//	updates, err := safeharbor.BuildUpdates(current, desired, dir)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := safeharbor.WrapAsAggregate(updates, agreementAddr, multicallAddr, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.Kind == safeharbor.ResultNone {
//	    // nothing to do
//	}
//
// # Ordering
//
// Updates are emitted in a fixed order so the resulting calldata is
// deterministic:
//
//  1. One removeChains call with every chain that left the desired state
//  2. One addChains call with every chain that entered the desired state
//  3. For each remaining on-chain chain, in on-chain order, a removeAccounts
//     call followed by an addAccounts call
//
// Accounts are identified by (address, child contract scope). Changing the
// scope of an address is a removal of the old pair plus an addition of the
// new one.
//
// # Warnings
//
// Anomalous but tolerable input is reported as a Warning rather than an
// error. Data quality warnings cover chains the directory cannot resolve;
// integrity warnings cover recovery addresses that disagree between the
// agreement and the directory.
//
// # Pipeline
//
// Pipeline ties the sources (see the csvsource and onchain packages) to the
// builder and the aggregator, and Verify re-runs it to check a payload byte
// for byte.
package safeharbor
