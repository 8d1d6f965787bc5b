package csvsource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractsCSV = `Status,Chain,Address,isFactory
ACTIVE,ETHEREUM,0xA1,FALSE
ACTIVE,ETHEREUM,0xA2,TRUE
INACTIVE,ETHEREUM,0xA3,FALSE
ACTIVE,GNOSIS,0xB1,
`

func quietLogger() log.Logger {
	return log.NewLogger(log.DiscardHandler())
}

func testFetcher(opts ...Option) *Fetcher {
	base := []Option{WithLogger(quietLogger()), WithRetry(2, time.Millisecond)}
	return NewFetcher(append(base, opts...)...)
}

func csvServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func serveCSV(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}
}

func TestFetch(t *testing.T) {
	srv := csvServer(t, serveCSV(contractsCSV))

	records, err := testFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, Record{"Status": "ACTIVE", "Chain": "ETHEREUM", "Address": "0xA1", "isFactory": "FALSE"}, records[0])
	assert.Equal(t, "", records[3]["isFactory"])
}

func TestFetchRejectsNonCSV(t *testing.T) {
	var hits atomic.Int32
	srv := csvServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>sign in</html>"))
	})

	_, err := testFetcher().Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNotCSV)
	assert.Equal(t, int32(1), hits.Load(), "content type errors are not retried")
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := csvServer(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		serveCSV(contractsCSV)(w, r)
	})

	records, err := testFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, records, 4)
	assert.Equal(t, int32(3), hits.Load())
}

func TestFetchGivesUpAfterRetries(t *testing.T) {
	var hits atomic.Int32
	srv := csvServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := testFetcher().Fetch(context.Background(), srv.URL)
	var herr *HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusBadGateway, herr.StatusCode)
	assert.Equal(t, int32(3), hits.Load(), "one attempt plus two retries")
}

func TestFetchClientErrorIsPermanent(t *testing.T) {
	var hits atomic.Int32
	srv := csvServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := testFetcher().Fetch(context.Background(), srv.URL)
	var herr *HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusNotFound, herr.StatusCode)
	assert.Contains(t, herr.Error(), srv.URL)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchCanceledContext(t *testing.T) {
	srv := csvServer(t, serveCSV(contractsCSV))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testFetcher().Fetch(ctx, srv.URL)
	assert.Error(t, err)
}

func TestFetcherDefaults(t *testing.T) {
	f := NewFetcher()
	assert.Equal(t, 30*time.Second, f.client.Timeout)
	assert.Equal(t, uint64(3), f.maxRetries)
	assert.Equal(t, time.Second, f.retryInterval)

	client := &http.Client{}
	f = NewFetcher(WithHTTPClient(client), WithHTTPClient(nil), WithLogger(nil))
	assert.Same(t, client, f.client)
	assert.NotNil(t, f.logger)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Record
	}{
		{
			name:  "empty document",
			input: "",
			want:  []Record{},
		},
		{
			name:  "header only",
			input: "Name,Caip2ChainId\n",
			want:  []Record{},
		},
		{
			name:  "byte order mark and padding",
			input: "\ufeffName , Caip2ChainId\n ETHEREUM , eip155:1 \n",
			want:  []Record{{"Name": "ETHEREUM", "Caip2ChainId": "eip155:1"}},
		},
		{
			name:  "blank rows skipped",
			input: "Name,Caip2ChainId\nETHEREUM,eip155:1\n,\n\nGNOSIS,eip155:100\n",
			want: []Record{
				{"Name": "ETHEREUM", "Caip2ChainId": "eip155:1"},
				{"Name": "GNOSIS", "Caip2ChainId": "eip155:100"},
			},
		},
		{
			name:  "short row padded",
			input: "Name,Caip2ChainId,AssetRecoveryAddress\nETHEREUM,eip155:1\n",
			want:  []Record{{"Name": "ETHEREUM", "Caip2ChainId": "eip155:1", "AssetRecoveryAddress": ""}},
		},
		{
			name:  "quoted fields",
			input: "Name,Notes\n\"OPTIMISM\",\"L2, op stack\"\n",
			want:  []Record{{"Name": "OPTIMISM", "Notes": "L2, op stack"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader("Name\n\"unterminated\n"))
	assert.Error(t, err)
}
