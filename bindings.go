package safeharbor

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// AgreementAccount mirrors the agreement's Account struct.
type AgreementAccount struct {
	AccountAddress     string
	ChildContractScope uint8
}

// AgreementChain mirrors the agreement's Chain struct.
type AgreementChain struct {
	AssetRecoveryAddress string
	Accounts             []AgreementAccount
	Caip2ChainId         string
}

// AgreementContact mirrors the agreement's Contact struct.
type AgreementContact struct {
	Name    string
	Contact string
}

// AgreementBountyTerms mirrors the agreement's BountyTerms struct.
type AgreementBountyTerms struct {
	BountyPercentage      *big.Int
	BountyCapUSD          *big.Int
	Retainable            bool
	Identity              uint8
	DiligenceRequirements string
	AggregateBountyCapUSD *big.Int
}

// AgreementDetails mirrors the AgreementDetailsV2 struct returned by getDetails.
// Field order matches the ABI so decoded tuples convert positionally.
type AgreementDetails struct {
	ProtocolName   string
	ContactDetails []AgreementContact
	Chains         []AgreementChain
	BountyTerms    AgreementBountyTerms
	AgreementURI   string
}

// MulticallCall mirrors the Multicall3 Call struct.
type MulticallCall struct {
	Target   common.Address `json:"target"`
	CallData []byte         `json:"callData"`
}

// toAgreementAccounts converts accounts to their ABI form.
func toAgreementAccounts(accounts []Account) []AgreementAccount {
	out := make([]AgreementAccount, len(accounts))
	for i, acc := range accounts {
		out[i] = AgreementAccount{
			AccountAddress:     acc.Address,
			ChildContractScope: uint8(acc.Scope),
		}
	}
	return out
}

// FromAgreementAccounts converts decoded ABI accounts to Accounts.
func FromAgreementAccounts(accounts []AgreementAccount) []Account {
	out := make([]Account, len(accounts))
	for i, acc := range accounts {
		out[i] = Account{
			Address: acc.AccountAddress,
			Scope:   ChildContractScope(acc.ChildContractScope),
		}
	}
	return out
}
