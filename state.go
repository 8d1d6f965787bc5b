package safeharbor

import "slices"

// ChainRecord holds the agreement scope for one chain.
// Desired records built from a spreadsheet leave ChainID and RecoveryAddress
// empty; those come from the ChainDirectory.
type ChainRecord struct {
	Name            string    `json:"name"`
	ChainID         string    `json:"caip2ChainId,omitempty"`
	RecoveryAddress string    `json:"assetRecoveryAddress,omitempty"`
	Accounts        []Account `json:"accounts"`
}

// ChainStateMap maps chain names to chain records and remembers insertion
// order. Iteration order is part of the output contract: it decides the order
// of removed chains, added chains and account updates.
type ChainStateMap struct {
	names    []string
	chains   map[string]*ChainRecord
	warnings []Warning
}

// NewChainStateMap creates a ChainStateMap holding the given records in order.
func NewChainStateMap(records ...*ChainRecord) *ChainStateMap {
	m := &ChainStateMap{
		names:  make([]string, 0, len(records)),
		chains: make(map[string]*ChainRecord, len(records)),
	}
	for _, r := range records {
		m.Set(r)
	}
	return m
}

// Set stores a record under its name. Replacing a record keeps its
// original position.
func (m *ChainStateMap) Set(record *ChainRecord) {
	if _, exists := m.chains[record.Name]; !exists {
		m.names = append(m.names, record.Name)
	}
	m.chains[record.Name] = record
}

// Append adds accounts to the named chain, creating the record if needed.
func (m *ChainStateMap) Append(name string, accounts ...Account) *ChainRecord {
	record, ok := m.chains[name]
	if !ok {
		record = &ChainRecord{Name: name, Accounts: []Account{}}
		m.Set(record)
	}
	record.Accounts = append(record.Accounts, accounts...)
	return record
}

// Get returns the record for a chain name.
func (m *ChainStateMap) Get(name string) (*ChainRecord, bool) {
	if m == nil {
		return nil, false
	}
	r, ok := m.chains[name]
	return r, ok
}

// Has returns true if the chain is present.
func (m *ChainStateMap) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Accounts returns the accounts of a chain, or nil if the chain is absent.
func (m *ChainStateMap) Accounts(name string) []Account {
	if r, ok := m.Get(name); ok {
		return r.Accounts
	}
	return nil
}

// Names returns the chain names in insertion order.
func (m *ChainStateMap) Names() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Len returns the number of chains.
func (m *ChainStateMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// AddWarnings records anomalies found while the state was loaded, such as
// on-chain chains dropped for lack of directory metadata.
func (m *ChainStateMap) AddWarnings(warnings ...Warning) {
	m.warnings = append(m.warnings, warnings...)
}

// Warnings returns a copy of the load-time warnings.
func (m *ChainStateMap) Warnings() []Warning {
	if m == nil || len(m.warnings) == 0 {
		return nil
	}
	return slices.Clone(m.warnings)
}
