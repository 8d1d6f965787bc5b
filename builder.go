package safeharbor

import (
	"github.com/ethereum/go-ethereum/log"
)

// Plan is the output of Builder.Build.
type Plan struct {
	Updates  []*UpdateOperation `json:"updates"`
	Warnings []Warning          `json:"warnings,omitempty"`
}

// Empty returns true if no update is required.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Updates) == 0
}

// Builder turns the difference between the on-chain state and the desired
// state into an ordered list of agreement calls.
type Builder struct {
	logger  log.Logger
	encoder Encoder
	strict  bool
}

// NewBuilder creates a Builder with the given options.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		logger:  log.Root(),
		encoder: defaultEncoder,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultEncoder Encoder = NewABIEncoder()

// BuildUpdates is shorthand for NewBuilder().Build that drops the warnings.
func BuildUpdates(current, desired *ChainStateMap, dir *ChainDirectory) ([]*UpdateOperation, error) {
	plan, err := NewBuilder().Build(current, desired, dir)
	if err != nil {
		return nil, err
	}
	return plan.Updates, nil
}

// Encoder returns the encoder used by the builder.
func (b *Builder) Encoder() Encoder {
	return b.encoder
}

// Build computes the updates that turn current into desired.
//
// Updates come out as: one removeChains call, one addChains call, then for
// every remaining on-chain chain in on-chain order a removeAccounts call
// followed by an addAccounts call. Calls with nothing to change are not
// emitted. New chains with an empty address or undefined scope fail the
// whole build with an *AccountValidationError.
func (b *Builder) Build(current, desired *ChainStateMap, dir *ChainDirectory) (*Plan, error) {
	if current == nil {
		current = NewChainStateMap()
	}
	if desired == nil {
		desired = NewChainStateMap()
	}

	plan := &Plan{Updates: []*UpdateOperation{}}

	for _, w := range recoveryMismatches(current, desired, dir) {
		b.warn(plan, w)
	}

	diff := DiffChains(current, desired, dir)
	for _, w := range diff.Warnings {
		b.warn(plan, w)
	}
	if b.strict && len(diff.Excluded) > 0 {
		return nil, &ChainResolutionError{Chain: diff.Excluded[0], Err: ErrUnknownChain}
	}

	if err := b.buildChainRemovals(plan, diff.ChainsToRemove, current, dir); err != nil {
		return nil, err
	}
	if err := b.buildChainAdditions(plan, diff.ChainsToAdd, desired, dir); err != nil {
		return nil, err
	}

	for _, name := range current.Names() {
		if diff.Removing(name) {
			b.logger.Debug("Skipping account updates for chain being removed", "chain", name)
			continue
		}
		if diff.IsExcluded(name) {
			continue
		}
		chainID, ok := b.resolveChainID(plan, name, current, dir)
		if !ok {
			continue
		}

		accounts := DiffAccounts(current.Accounts(name), desired.Accounts(name))
		if len(accounts.ToRemove) > 0 {
			op, err := removeAccountsOp(b.encoder, chainID, accounts.ToRemove)
			if err != nil {
				return nil, err
			}
			plan.Updates = append(plan.Updates, op)
		}
		if len(accounts.ToAdd) > 0 {
			op, err := addAccountsOp(b.encoder, chainID, accounts.ToAdd)
			if err != nil {
				return nil, err
			}
			plan.Updates = append(plan.Updates, op)
		}
	}

	b.logger.Debug("Built agreement updates", "updates", len(plan.Updates), "warnings", len(plan.Warnings))
	return plan, nil
}

// buildChainRemovals emits a single removeChains call for every removed chain.
func (b *Builder) buildChainRemovals(plan *Plan, names []string, current *ChainStateMap, dir *ChainDirectory) error {
	if len(names) == 0 {
		return nil
	}
	ids := make([]string, 0, len(names))
	for _, name := range names {
		if id, ok := b.resolveChainID(plan, name, current, dir); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	op, err := removeChainsOp(b.encoder, ids)
	if err != nil {
		return err
	}
	plan.Updates = append(plan.Updates, op)
	return nil
}

// buildChainAdditions emits a single addChains call for every added chain.
func (b *Builder) buildChainAdditions(plan *Plan, names []string, desired *ChainStateMap, dir *ChainDirectory) error {
	if len(names) == 0 {
		return nil
	}
	chains := make([]ChainDescriptor, len(names))
	for i, name := range names {
		chainID, _ := dir.ChainID(name)
		recovery, _ := dir.RecoveryAddress(name)
		accounts := make([]Account, len(desired.Accounts(name)))
		copy(accounts, desired.Accounts(name))
		chains[i] = ChainDescriptor{
			RecoveryAddress: recovery,
			Accounts:        accounts,
			ChainID:         chainID,
		}
	}

	for i, chain := range chains {
		var bad []Account
		for _, acc := range chain.Accounts {
			if !acc.Valid() {
				bad = append(bad, acc)
			}
		}
		if len(bad) > 0 {
			return &AccountValidationError{Chain: names[i], Accounts: bad}
		}
	}

	op, err := addChainsOp(b.encoder, chains)
	if err != nil {
		return err
	}
	plan.Updates = append(plan.Updates, op)
	return nil
}

// resolveChainID returns the CAIP-2 id for an on-chain chain, preferring the
// directory over the id stored with the record.
func (b *Builder) resolveChainID(plan *Plan, name string, current *ChainStateMap, dir *ChainDirectory) (string, bool) {
	if id, ok := dir.ChainID(name); ok && id != "" {
		return id, true
	}
	if record, ok := current.Get(name); ok && record.ChainID != "" {
		return record.ChainID, true
	}
	b.warn(plan, Warning{
		Kind:    WarningUnresolvedChain,
		Chain:   name,
		Message: "No CAIP-2 chain id for on-chain chain; leaving it untouched",
	})
	return "", false
}

func (b *Builder) warn(plan *Plan, w Warning) {
	plan.Warnings = append(plan.Warnings, w)
	w.Log(b.logger)
}
