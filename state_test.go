package safeharbor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainStateMapOrder(t *testing.T) {
	m := NewChainStateMap(
		desiredRecord("GNOSIS"),
		desiredRecord("ETHEREUM"),
	)
	m.Set(desiredRecord("OPTIMISM"))

	assert.Equal(t, []string{"GNOSIS", "ETHEREUM", "OPTIMISM"}, m.Names())
	assert.Equal(t, 3, m.Len())
}

func TestChainStateMapSetReplaceKeepsPosition(t *testing.T) {
	m := NewChainStateMap(desiredRecord("GNOSIS"), desiredRecord("ETHEREUM"))
	m.Set(desiredRecord("GNOSIS", acc("0xB1", ScopeNone)))

	assert.Equal(t, []string{"GNOSIS", "ETHEREUM"}, m.Names())
	assert.Equal(t, []Account{acc("0xB1", ScopeNone)}, m.Accounts("GNOSIS"))
}

func TestChainStateMapAppend(t *testing.T) {
	m := NewChainStateMap()
	m.Append("ETHEREUM", acc("0xA1", ScopeNone))
	m.Append("GNOSIS")
	m.Append("ETHEREUM", acc("0xA2", ScopeAll))

	assert.Equal(t, []string{"ETHEREUM", "GNOSIS"}, m.Names())
	assert.Equal(t, []Account{acc("0xA1", ScopeNone), acc("0xA2", ScopeAll)}, m.Accounts("ETHEREUM"))

	r, ok := m.Get("GNOSIS")
	require.True(t, ok)
	assert.NotNil(t, r.Accounts)
	assert.Empty(t, r.Accounts)
}

func TestChainStateMapLookups(t *testing.T) {
	m := NewChainStateMap(onchainRecord("ETHEREUM", acc("0xA1", ScopeNone)))

	assert.True(t, m.Has("ETHEREUM"))
	assert.False(t, m.Has("GNOSIS"))
	assert.Nil(t, m.Accounts("GNOSIS"))

	r, ok := m.Get("ETHEREUM")
	require.True(t, ok)
	assert.Equal(t, "eip155:1", r.ChainID)
}

func TestChainStateMapNamesIsCopy(t *testing.T) {
	m := NewChainStateMap(desiredRecord("ETHEREUM"))
	names := m.Names()
	names[0] = "MUTATED"
	assert.Equal(t, []string{"ETHEREUM"}, m.Names())
}

func TestChainStateMapNil(t *testing.T) {
	var m *ChainStateMap

	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Names())
	assert.False(t, m.Has("ETHEREUM"))
	assert.Nil(t, m.Accounts("ETHEREUM"))
	_, ok := m.Get("ETHEREUM")
	assert.False(t, ok)
}

func TestChainStateMapWarnings(t *testing.T) {
	var nilMap *ChainStateMap
	assert.Nil(t, nilMap.Warnings())

	m := NewChainStateMap()
	assert.Nil(t, m.Warnings())

	w := Warning{Kind: WarningUnknownChainID, Chain: "eip155:250"}
	m.AddWarnings(w)
	got := m.Warnings()
	require.Equal(t, []Warning{w}, got)

	got[0].Chain = "changed"
	assert.Equal(t, "eip155:250", m.Warnings()[0].Chain)
}
