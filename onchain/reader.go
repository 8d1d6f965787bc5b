// Package onchain reads the current scope of a Safe Harbor agreement.
package onchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"

	safeharbor "github.com/branched-services/go-safeharbor"
)

// ErrEmptyResult indicates getDetails returned no values.
var ErrEmptyResult = errors.New("onchain: getDetails returned no data")

// Reader performs read-only calls against an agreement.
type Reader struct {
	agreement   *safeharbor.Contract
	bound       *bind.BoundContract
	logger      log.Logger
	blockNumber *big.Int
	close       func()
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger. Default is log.Root().
func WithLogger(logger log.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithBlockNumber pins reads to a block. Default is the latest block.
func WithBlockNumber(n *big.Int) Option {
	return func(r *Reader) {
		r.blockNumber = n
	}
}

// NewReader creates a Reader for the agreement at address.
func NewReader(address common.Address, caller bind.ContractCaller, opts ...Option) *Reader {
	agreement := safeharbor.NewAgreement(address)
	r := &Reader{
		agreement: agreement,
		bound:     bind.NewBoundContract(address, agreement.ABI(), caller, nil, nil),
		logger:    log.Root(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dial connects to rpcURL and creates a Reader for the agreement at address.
// Close releases the connection.
func Dial(ctx context.Context, rpcURL string, address common.Address, opts ...Option) (*Reader, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("onchain: dial %s: %w", rpcURL, err)
	}
	r := NewReader(address, client, opts...)
	r.close = client.Close
	return r, nil
}

// Close releases the RPC connection, if the Reader owns one.
func (r *Reader) Close() {
	if r.close != nil {
		r.close()
	}
}

// Address returns the agreement address.
func (r *Reader) Address() common.Address {
	return r.agreement.Address()
}

// GetDetails calls the agreement's getDetails.
func (r *Reader) GetDetails(ctx context.Context) (*safeharbor.AgreementDetails, error) {
	var out []any
	opts := &bind.CallOpts{Context: ctx, BlockNumber: r.blockNumber}
	if err := r.bound.Call(opts, &out, safeharbor.FuncGetDetails); err != nil {
		return nil, fmt.Errorf("onchain: getDetails on %s: %w", r.Address().Hex(), err)
	}
	if len(out) == 0 {
		return nil, ErrEmptyResult
	}
	details := *abi.ConvertType(out[0], new(safeharbor.AgreementDetails)).(*safeharbor.AgreementDetails)
	return &details, nil
}

// FetchOnchainState reads the agreement and normalizes it against dir.
// It implements safeharbor.OnchainStateSource.
func (r *Reader) FetchOnchainState(ctx context.Context, dir *safeharbor.ChainDirectory) (*safeharbor.ChainStateMap, error) {
	details, err := r.GetDetails(ctx)
	if err != nil {
		return nil, err
	}
	state, warnings := Normalize(details, dir)
	for _, w := range warnings {
		w.Log(r.logger)
	}
	r.logger.Debug("Loaded on-chain state", "protocol", details.ProtocolName, "chains", state.Len())
	return state, nil
}

var _ safeharbor.OnchainStateSource = (*Reader)(nil)
