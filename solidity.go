package safeharbor

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// RenderSolidity renders the updates as a Solidity snippet that fills a
// bytes[] of calldatas and hands it to _doSaferHarborUpdates. It returns ""
// for an empty list.
func RenderSolidity(ops []*UpdateOperation) string {
	if len(ops) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("// ---------- Bug Bounty Updates ----------\n")
	fmt.Fprintf(&sb, "bytes[] memory calldatas = new bytes[](%d);\n", len(ops))
	for i, op := range ops {
		fmt.Fprintf(&sb, "\n// %s\n", op.Describe())
		fmt.Fprintf(&sb, "calldatas[%d] = hex\"%s\";\n", i, strings.TrimPrefix(hexutil.Encode(op.Calldata()), "0x"))
	}
	sb.WriteString("\n_doSaferHarborUpdates(calldatas);")
	return sb.String()
}
