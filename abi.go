package safeharbor

// Agreement function names.
const (
	FuncAddAccounts    = "addAccounts"
	FuncRemoveAccounts = "removeAccounts"
	FuncAddChains      = "addChains"
	FuncRemoveChains   = "removeChains"
	FuncGetDetails     = "getDetails"

	// FuncAggregate is the Multicall3 batching entry point.
	FuncAggregate = "aggregate"
)

const accountTupleJSON = `{
	"name": "accounts",
	"type": "tuple[]",
	"internalType": "struct Account[]",
	"components": [
		{"name": "accountAddress", "type": "string", "internalType": "string"},
		{"name": "childContractScope", "type": "uint8", "internalType": "enum ChildContractScope"}
	]
}`

const chainTupleComponentsJSON = `[
	{"name": "assetRecoveryAddress", "type": "string", "internalType": "string"},
	` + accountTupleJSON + `,
	{"name": "caip2ChainId", "type": "string", "internalType": "string"}
]`

// AgreementABI is the subset of the Safe Harbor AgreementV2 ABI used for
// reconciliation.
const AgreementABI = `[
	{
		"type": "function",
		"name": "addAccounts",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "_caip2ChainId", "type": "string", "internalType": "string"},
			{
				"name": "_accounts",
				"type": "tuple[]",
				"internalType": "struct Account[]",
				"components": [
					{"name": "accountAddress", "type": "string", "internalType": "string"},
					{"name": "childContractScope", "type": "uint8", "internalType": "enum ChildContractScope"}
				]
			}
		],
		"outputs": []
	},
	{
		"type": "function",
		"name": "removeAccounts",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "_caip2ChainId", "type": "string", "internalType": "string"},
			{"name": "_accountAddresses", "type": "string[]", "internalType": "string[]"}
		],
		"outputs": []
	},
	{
		"type": "function",
		"name": "addChains",
		"stateMutability": "nonpayable",
		"inputs": [
			{
				"name": "_chains",
				"type": "tuple[]",
				"internalType": "struct Chain[]",
				"components": ` + chainTupleComponentsJSON + `
			}
		],
		"outputs": []
	},
	{
		"type": "function",
		"name": "removeChains",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "_caip2ChainIds", "type": "string[]", "internalType": "string[]"}
		],
		"outputs": []
	},
	{
		"type": "function",
		"name": "getDetails",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [
			{
				"name": "",
				"type": "tuple",
				"internalType": "struct AgreementDetailsV2",
				"components": [
					{"name": "protocolName", "type": "string", "internalType": "string"},
					{
						"name": "contactDetails",
						"type": "tuple[]",
						"internalType": "struct Contact[]",
						"components": [
							{"name": "name", "type": "string", "internalType": "string"},
							{"name": "contact", "type": "string", "internalType": "string"}
						]
					},
					{
						"name": "chains",
						"type": "tuple[]",
						"internalType": "struct Chain[]",
						"components": ` + chainTupleComponentsJSON + `
					},
					{
						"name": "bountyTerms",
						"type": "tuple",
						"internalType": "struct BountyTerms",
						"components": [
							{"name": "bountyPercentage", "type": "uint256", "internalType": "uint256"},
							{"name": "bountyCapUSD", "type": "uint256", "internalType": "uint256"},
							{"name": "retainable", "type": "bool", "internalType": "bool"},
							{"name": "identity", "type": "uint8", "internalType": "enum IdentityRequirements"},
							{"name": "diligenceRequirements", "type": "string", "internalType": "string"},
							{"name": "aggregateBountyCapUSD", "type": "uint256", "internalType": "uint256"}
						]
					},
					{"name": "agreementURI", "type": "string", "internalType": "string"}
				]
			}
		]
	}
]`

// MulticallABI is the Multicall3 aggregate function.
const MulticallABI = `[
	{
		"type": "function",
		"name": "aggregate",
		"stateMutability": "payable",
		"inputs": [
			{
				"name": "calls",
				"type": "tuple[]",
				"internalType": "struct Multicall3.Call[]",
				"components": [
					{"name": "target", "type": "address", "internalType": "address"},
					{"name": "callData", "type": "bytes", "internalType": "bytes"}
				]
			}
		],
		"outputs": [
			{"name": "blockNumber", "type": "uint256", "internalType": "uint256"},
			{"name": "returnData", "type": "bytes[]", "internalType": "bytes[]"}
		]
	}
]`
