package csvsource

import (
	"context"
	"fmt"

	safeharbor "github.com/branched-services/go-safeharbor"
)

// FetchDesiredState downloads the contracts-in-scope sheet and normalizes it.
func (f *Fetcher) FetchDesiredState(ctx context.Context, url string) (*safeharbor.ChainStateMap, error) {
	records, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("contracts in scope: %w", err)
	}
	state := NormalizeContracts(records)
	f.logger.Debug("Loaded desired state", "rows", len(records), "chains", state.Len())
	return state, nil
}

// FetchChainDirectory downloads the chain details sheet and builds a
// directory from it.
func (f *Fetcher) FetchChainDirectory(ctx context.Context, url string) (*safeharbor.ChainDirectory, error) {
	records, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("chain details: %w", err)
	}
	dir, err := NormalizeChainDetails(records, f.logger)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("Loaded chain directory", "chains", dir.Len())
	return dir, nil
}

// Source binds a Fetcher to the two sheet URLs. It implements
// safeharbor.DesiredStateSource and safeharbor.DirectorySource.
type Source struct {
	Fetcher         *Fetcher
	ContractsURL    string
	ChainDetailsURL string
}

// NewSource creates a Source. A nil fetcher uses NewFetcher().
func NewSource(fetcher *Fetcher, contractsURL, chainDetailsURL string) *Source {
	if fetcher == nil {
		fetcher = NewFetcher()
	}
	return &Source{
		Fetcher:         fetcher,
		ContractsURL:    contractsURL,
		ChainDetailsURL: chainDetailsURL,
	}
}

// FetchDesiredState implements safeharbor.DesiredStateSource.
func (s *Source) FetchDesiredState(ctx context.Context) (*safeharbor.ChainStateMap, error) {
	return s.Fetcher.FetchDesiredState(ctx, s.ContractsURL)
}

// FetchChainDirectory implements safeharbor.DirectorySource.
func (s *Source) FetchChainDirectory(ctx context.Context) (*safeharbor.ChainDirectory, error) {
	return s.Fetcher.FetchChainDirectory(ctx, s.ChainDetailsURL)
}

var (
	_ safeharbor.DesiredStateSource = (*Source)(nil)
	_ safeharbor.DirectorySource    = (*Source)(nil)
)
