package safeharbor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainDirectoryLookups(t *testing.T) {
	dir := testDirectory()

	t.Run("by name", func(t *testing.T) {
		id, ok := dir.ChainID("GNOSIS")
		assert.True(t, ok)
		assert.Equal(t, "eip155:100", id)

		recovery, ok := dir.RecoveryAddress("OPTIMISM")
		assert.True(t, ok)
		assert.Equal(t, optimismRecovery, recovery)
	})

	t.Run("by id", func(t *testing.T) {
		name, ok := dir.ChainName("eip155:1")
		assert.True(t, ok)
		assert.Equal(t, "ETHEREUM", name)
	})

	t.Run("unknown", func(t *testing.T) {
		assert.False(t, dir.Has("FANTOM"))
		_, ok := dir.ChainID("FANTOM")
		assert.False(t, ok)
		_, ok = dir.ChainName("eip155:250")
		assert.False(t, ok)
		_, ok = dir.RecoveryAddress("FANTOM")
		assert.False(t, ok)
	})

	t.Run("entries keep insertion order", func(t *testing.T) {
		entries := dir.Entries()
		assert.Len(t, entries, 3)
		assert.Equal(t, "ETHEREUM", entries[0].Name)
		assert.Equal(t, "OPTIMISM", entries[2].Name)
		assert.Equal(t, 3, dir.Len())
	})
}

func TestChainDirectoryDuplicateNameReplaces(t *testing.T) {
	dir := NewChainDirectory(
		ChainInfo{Name: "ETHEREUM", ChainID: "eip155:1", RecoveryAddress: "0x1"},
		ChainInfo{Name: "GNOSIS", ChainID: "eip155:100"},
		ChainInfo{Name: "ETHEREUM", ChainID: "eip155:11155111", RecoveryAddress: "0x2"},
	)

	assert.Equal(t, 2, dir.Len())
	id, _ := dir.ChainID("ETHEREUM")
	assert.Equal(t, "eip155:11155111", id)
	_, ok := dir.ChainName("eip155:1")
	assert.False(t, ok, "replaced id should no longer resolve")
	name, _ := dir.ChainName("eip155:11155111")
	assert.Equal(t, "ETHEREUM", name)
	assert.Equal(t, "ETHEREUM", dir.Entries()[0].Name)
}

func TestChainDirectoryNil(t *testing.T) {
	var dir *ChainDirectory

	assert.False(t, dir.Has("ETHEREUM"))
	assert.Equal(t, 0, dir.Len())
	assert.Nil(t, dir.Entries())
	_, ok := dir.ChainID("ETHEREUM")
	assert.False(t, ok)
}
