package safeharbor

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAgreement(t *testing.T) {
	c := NewAgreement(testAgreement)

	assert.Equal(t, testAgreement, c.Address())
	assert.Len(t, c.ABI().Methods, 5)
	for _, name := range []string{FuncAddAccounts, FuncAddChains, FuncGetDetails, FuncRemoveAccounts, FuncRemoveChains} {
		_, err := c.Method(name)
		assert.NoError(t, err, name)
	}

	_, err := c.Method(FuncAggregate)
	var notFound *MethodNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestNewMulticall(t *testing.T) {
	c := NewMulticall(testMulticall)

	assert.Equal(t, testMulticall, c.Address())
	assert.Len(t, c.ABI().Methods, 1)

	m, err := c.Method(FuncAggregate)
	require.NoError(t, err)
	assert.Equal(t, "aggregate((address,bytes)[])", m.Sig)
	assert.Equal(t, []byte{0x25, 0x2d, 0xba, 0x42}, m.ID)
}

func TestAgreementSignatures(t *testing.T) {
	tests := []struct {
		method string
		sig    string
	}{
		{FuncAddAccounts, "addAccounts(string,(string,uint8)[])"},
		{FuncRemoveAccounts, "removeAccounts(string,string[])"},
		{FuncAddChains, "addChains((string,(string,uint8)[],string)[])"},
		{FuncRemoveChains, "removeChains(string[])"},
		{FuncGetDetails, "getDetails()"},
	}

	c := NewAgreement(common.Address{})
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			m, err := c.Method(tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.sig, m.Sig)
		})
	}
}

func TestContractMethodNotFound(t *testing.T) {
	c := NewAgreement(testAgreement)

	_, err := c.Method("setOwner")
	var mnf *MethodNotFoundError
	require.True(t, errors.As(err, &mnf))
	assert.Equal(t, "setOwner", mnf.Method)
	assert.Equal(t, testAgreement, mnf.Contract)

	_, err = c.Pack("setOwner")
	assert.True(t, errors.As(err, &mnf))
}

func TestContractPackEncodingError(t *testing.T) {
	c := NewAgreement(testAgreement)

	_, err := c.Pack(FuncRemoveChains, 42)
	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, FuncRemoveChains, encErr.Function)
}

func TestParseABI(t *testing.T) {
	_, err := ParseABI(`not json`)
	assert.Error(t, err)

	parsed, err := ParseABI(MulticallABI)
	require.NoError(t, err)
	assert.Contains(t, parsed.Methods, FuncAggregate)

	assert.Panics(t, func() { MustParseABI(`[{`) })
	assert.Equal(t, agreementABI.Methods[FuncAddChains].ID, ParsedAgreementABI().Methods[FuncAddChains].ID)
}
