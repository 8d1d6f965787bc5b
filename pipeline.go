package safeharbor

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"
)

// DirectorySource supplies the chain directory.
type DirectorySource interface {
	FetchChainDirectory(ctx context.Context) (*ChainDirectory, error)
}

// DesiredStateSource supplies the desired state.
type DesiredStateSource interface {
	FetchDesiredState(ctx context.Context) (*ChainStateMap, error)
}

// OnchainStateSource supplies the agreement's current state. On-chain chain
// ids missing from dir are dropped by the source.
type OnchainStateSource interface {
	FetchOnchainState(ctx context.Context, dir *ChainDirectory) (*ChainStateMap, error)
}

// DirectoryFunc adapts a function to DirectorySource.
type DirectoryFunc func(ctx context.Context) (*ChainDirectory, error)

func (f DirectoryFunc) FetchChainDirectory(ctx context.Context) (*ChainDirectory, error) {
	return f(ctx)
}

// DesiredStateFunc adapts a function to DesiredStateSource.
type DesiredStateFunc func(ctx context.Context) (*ChainStateMap, error)

func (f DesiredStateFunc) FetchDesiredState(ctx context.Context) (*ChainStateMap, error) {
	return f(ctx)
}

// OnchainStateFunc adapts a function to OnchainStateSource.
type OnchainStateFunc func(ctx context.Context, dir *ChainDirectory) (*ChainStateMap, error)

func (f OnchainStateFunc) FetchOnchainState(ctx context.Context, dir *ChainDirectory) (*ChainStateMap, error) {
	return f(ctx, dir)
}

// Pipeline runs one reconciliation pass: fetch, diff, build, aggregate.
// Each stage only sees the values handed to it by the previous one.
type Pipeline struct {
	Directory DirectorySource
	Desired   DesiredStateSource
	Onchain   OnchainStateSource

	// Agreement is the Safe Harbor agreement the updates target.
	Agreement common.Address

	// Multicall is the Multicall3 contract executing the batch.
	Multicall common.Address

	// Builder defaults to NewBuilder().
	Builder *Builder

	// Logger defaults to log.Root().
	Logger log.Logger
}

func (p *Pipeline) logger() log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Root()
}

func (p *Pipeline) builder() *Builder {
	if p.Builder != nil {
		return p.Builder
	}
	return NewBuilder(WithLogger(p.logger()))
}

// Plan fetches both states and builds the update list. The directory and the
// desired state are fetched concurrently; the on-chain state is read once
// the directory is known. Source errors are returned as is.
func (p *Pipeline) Plan(ctx context.Context) (*Plan, error) {
	if p == nil || p.Directory == nil || p.Desired == nil || p.Onchain == nil {
		return nil, ErrNoSource
	}
	logger := p.logger()

	var (
		dir     *ChainDirectory
		desired *ChainStateMap
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Fetching chain details")
		d, err := p.Directory.FetchChainDirectory(gctx)
		if err != nil {
			return fmt.Errorf("fetch chain directory: %w", err)
		}
		dir = d
		return nil
	})
	g.Go(func() error {
		logger.Info("Fetching desired state")
		s, err := p.Desired.FetchDesiredState(gctx)
		if err != nil {
			return fmt.Errorf("fetch desired state: %w", err)
		}
		desired = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("Fetching on-chain state", "agreement", p.Agreement)
	current, err := p.Onchain.FetchOnchainState(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("fetch on-chain state: %w", err)
	}

	logger.Info("Generating updates", "onchainChains", current.Len(), "desiredChains", desired.Len())
	plan, err := p.builder().Build(current, desired, dir)
	if err != nil {
		return nil, err
	}
	// Sources log their own warnings; they are only carried here.
	sourceWarnings := append(desired.Warnings(), current.Warnings()...)
	if len(sourceWarnings) > 0 {
		plan.Warnings = append(sourceWarnings, plan.Warnings...)
	}
	return plan, nil
}

// Run executes the pipeline and wraps the updates into a multicall payload.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	plan, err := p.Plan(ctx)
	if err != nil {
		return nil, err
	}
	result, err := WrapAsAggregate(plan.Updates, p.Agreement, p.Multicall, p.builder().Encoder())
	if err != nil {
		return nil, err
	}
	result.Warnings = plan.Warnings
	return result, nil
}

// RunUnwrapped executes the pipeline and returns the bare update list.
func (p *Pipeline) RunUnwrapped(ctx context.Context) (*Result, error) {
	plan, err := p.Plan(ctx)
	if err != nil {
		return nil, err
	}
	result := UpdatesResult(plan.Updates)
	result.Warnings = plan.Warnings
	return result, nil
}
