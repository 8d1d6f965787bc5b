package safeharbor

// ChainInfo describes one chain known to the directory.
type ChainInfo struct {
	Name            string `json:"name" yaml:"name"`
	ChainID         string `json:"caip2ChainId" yaml:"caip2_chain_id"`
	RecoveryAddress string `json:"assetRecoveryAddress" yaml:"asset_recovery_address"`
}

// ChainDirectory resolves chain names to CAIP-2 ids and back, and holds the
// configured recovery address for each chain. It is read-only once built.
type ChainDirectory struct {
	entries []ChainInfo
	byName  map[string]int
	byID    map[string]int
}

// NewChainDirectory builds a directory from the given entries. Later entries
// with a duplicate name or id replace earlier ones.
func NewChainDirectory(entries ...ChainInfo) *ChainDirectory {
	d := &ChainDirectory{
		entries: make([]ChainInfo, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if i, ok := d.byName[e.Name]; ok {
			delete(d.byID, d.entries[i].ChainID)
			d.entries[i] = e
			d.byID[e.ChainID] = i
			continue
		}
		d.entries = append(d.entries, e)
		d.byName[e.Name] = len(d.entries) - 1
		d.byID[e.ChainID] = len(d.entries) - 1
	}
	return d
}

// Has returns true if the chain name is known.
func (d *ChainDirectory) Has(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.byName[name]
	return ok
}

// ChainID returns the CAIP-2 id for a chain name.
func (d *ChainDirectory) ChainID(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	i, ok := d.byName[name]
	if !ok {
		return "", false
	}
	return d.entries[i].ChainID, true
}

// ChainName returns the chain name for a CAIP-2 id.
func (d *ChainDirectory) ChainName(chainID string) (string, bool) {
	if d == nil {
		return "", false
	}
	i, ok := d.byID[chainID]
	if !ok {
		return "", false
	}
	return d.entries[i].Name, true
}

// RecoveryAddress returns the configured asset recovery address for a chain.
func (d *ChainDirectory) RecoveryAddress(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	i, ok := d.byName[name]
	if !ok {
		return "", false
	}
	return d.entries[i].RecoveryAddress, true
}

// Entries returns a copy of the directory entries in insertion order.
func (d *ChainDirectory) Entries() []ChainInfo {
	if d == nil {
		return nil
	}
	out := make([]ChainInfo, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of chains in the directory.
func (d *ChainDirectory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}
