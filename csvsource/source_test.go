package csvsource

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chainDetailsCSV = `Name,Caip2ChainId,AssetRecoveryAddress
ETHEREUM,eip155:1,0xBE8E3e3618f7474F8cB1d074A26afFef007E98FB
GNOSIS,eip155:100,0x0000000000000000000000000000000000000100
`

func sheetsServer(t *testing.T) (contractsURL, chainDetailsURL string) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/contracts", serveCSV(contractsCSV))
	mux.HandleFunc("/chains", serveCSV(chainDetailsCSV))
	mux.HandleFunc("/html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	})
	srv := csvServer(t, mux.ServeHTTP)
	return srv.URL + "/contracts", srv.URL + "/chains"
}

func TestSource(t *testing.T) {
	contractsURL, chainsURL := sheetsServer(t)
	src := NewSource(testFetcher(), contractsURL, chainsURL)
	ctx := context.Background()

	dir, err := src.FetchChainDirectory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, dir.Len())

	state, err := src.FetchDesiredState(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ETHEREUM", "GNOSIS"}, state.Names())
	assert.Len(t, state.Accounts("ETHEREUM"), 2)
}

func TestSourceErrorsNameTheSheet(t *testing.T) {
	contractsURL, _ := sheetsServer(t)
	htmlURL := contractsURL[:len(contractsURL)-len("/contracts")] + "/html"
	src := NewSource(testFetcher(), htmlURL, htmlURL)
	ctx := context.Background()

	_, err := src.FetchDesiredState(ctx)
	assert.ErrorIs(t, err, ErrNotCSV)
	assert.Contains(t, err.Error(), "contracts in scope: ")

	_, err = src.FetchChainDirectory(ctx)
	assert.ErrorIs(t, err, ErrNotCSV)
	assert.Contains(t, err.Error(), "chain details: ")
}

func TestNewSourceDefaultFetcher(t *testing.T) {
	src := NewSource(nil, "a", "b")
	assert.NotNil(t, src.Fetcher)
}
