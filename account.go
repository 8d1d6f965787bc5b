package safeharbor

import "strconv"

// ChildContractScope controls whether contracts deployed by an account are
// covered by the agreement.
type ChildContractScope uint8

const (
	// ScopeNone covers only the account itself.
	ScopeNone ChildContractScope = iota

	// ScopeExistingOnly covers child contracts deployed before the agreement.
	ScopeExistingOnly

	// ScopeAll covers every child contract. Factories use this scope.
	ScopeAll

	// ScopeFutureOnly covers child contracts deployed after the agreement.
	ScopeFutureOnly
)

// Valid returns true if the scope is one of the values the agreement accepts.
func (s ChildContractScope) Valid() bool {
	return s <= ScopeFutureOnly
}

func (s ChildContractScope) String() string {
	switch s {
	case ScopeNone:
		return "None"
	case ScopeExistingOnly:
		return "ExistingOnly"
	case ScopeAll:
		return "All"
	case ScopeFutureOnly:
		return "FutureOnly"
	default:
		return "Undefined(" + strconv.Itoa(int(s)) + ")"
	}
}

// Account is a single in-scope account on one chain.
type Account struct {
	Address string             `json:"accountAddress"`
	Scope   ChildContractScope `json:"childContractScope"`
}

// Key returns the composite identity used for diffing.
// Two accounts with the same address but different scopes are distinct.
func (a Account) Key() string {
	return a.Address + "-" + strconv.Itoa(int(a.Scope))
}

// Valid returns true if the account has an address and a defined scope.
func (a Account) Valid() bool {
	return a.Address != "" && a.Scope.Valid()
}

// AccountDiff is the outcome of DiffAccounts.
type AccountDiff struct {
	ToAdd    []Account
	ToRemove []string
}

// Empty returns true if nothing needs to change.
func (d AccountDiff) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}

// DiffAccounts computes the accounts to add and the addresses to remove to
// turn current into desired. ToRemove follows the order of current and ToAdd
// follows the order of desired.
func DiffAccounts(current, desired []Account) AccountDiff {
	currentKeys := make(map[string]struct{}, len(current))
	for _, acc := range current {
		currentKeys[acc.Key()] = struct{}{}
	}
	desiredKeys := make(map[string]struct{}, len(desired))
	for _, acc := range desired {
		desiredKeys[acc.Key()] = struct{}{}
	}

	diff := AccountDiff{
		ToAdd:    []Account{},
		ToRemove: []string{},
	}
	for _, acc := range current {
		if _, ok := desiredKeys[acc.Key()]; !ok {
			diff.ToRemove = append(diff.ToRemove, acc.Address)
		}
	}
	for _, acc := range desired {
		if _, ok := currentKeys[acc.Key()]; !ok {
			diff.ToAdd = append(diff.ToAdd, Account{Address: acc.Address, Scope: acc.Scope})
		}
	}
	return diff
}
