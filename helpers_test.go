package safeharbor

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

const (
	ethRecovery      = "0xBE8E3e3618f7474F8cB1d074A26afFef007E98FB"
	gnosisRecovery   = "0x0000000000000000000000000000000000000100"
	optimismRecovery = "0x09b354cda89203bb7b3131cc728dfa06ab09ae2f"
)

var (
	testAgreement = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testMulticall = common.HexToAddress("0x5e227AD1969Ea493B43F840cfF78d08a6fc17796")
)

func testDirectory() *ChainDirectory {
	return NewChainDirectory(
		ChainInfo{Name: "ETHEREUM", ChainID: "eip155:1", RecoveryAddress: ethRecovery},
		ChainInfo{Name: "GNOSIS", ChainID: "eip155:100", RecoveryAddress: gnosisRecovery},
		ChainInfo{Name: "OPTIMISM", ChainID: "eip155:10", RecoveryAddress: optimismRecovery},
	)
}

func acc(address string, scope ChildContractScope) Account {
	return Account{Address: address, Scope: scope}
}

// onchainRecord builds a current-state record with the directory's id and
// recovery address.
func onchainRecord(name string, accounts ...Account) *ChainRecord {
	dir := testDirectory()
	id, _ := dir.ChainID(name)
	recovery, _ := dir.RecoveryAddress(name)
	if accounts == nil {
		accounts = []Account{}
	}
	return &ChainRecord{Name: name, ChainID: id, RecoveryAddress: recovery, Accounts: accounts}
}

// desiredRecord builds a sheet-style record: name and accounts only.
func desiredRecord(name string, accounts ...Account) *ChainRecord {
	if accounts == nil {
		accounts = []Account{}
	}
	return &ChainRecord{Name: name, Accounts: accounts}
}

func quietLogger() log.Logger {
	return log.NewLogger(log.DiscardHandler())
}

func newTestBuilder(opts ...BuilderOption) *Builder {
	return NewBuilder(append([]BuilderOption{WithLogger(quietLogger())}, opts...)...)
}

func functions(ops []*UpdateOperation) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.Function()
	}
	return out
}
