// Command safeharbor reconciles a Safe Harbor agreement with its contracts-in-scope
// sheet and prints the multicall payload that brings the agreement up to date.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"

	safeharbor "github.com/branched-services/go-safeharbor"
	"github.com/branched-services/go-safeharbor/config"
	"github.com/branched-services/go-safeharbor/csvsource"
	"github.com/branched-services/go-safeharbor/onchain"
)

var (
	Version = "dev"
	Commit  = "none"
)

// errMismatch signals a failed verification; it maps to exit code 1
// without an extra error line.
var errMismatch = errors.New("verification failed")

// pipelineFactory builds the pipeline for a configuration. The returned
// func releases its resources.
type pipelineFactory func(ctx context.Context, cfg *config.Config) (*safeharbor.Pipeline, func(), error)

type app struct {
	configPath string
	flags      config.Config
	verbosity  int
	strict     bool

	newPipeline pipelineFactory
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{newPipeline: dialPipeline}
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errMismatch) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "safeharbor",
		Short:         "Reconcile a Safe Harbor agreement with its contracts-in-scope sheet",
		Version:       fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(a.verbosity)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.flags.RPCURL, "rpc-url", "", "Ethereum JSON-RPC endpoint (overrides "+config.EnvRPCURL+")")
	pf.StringVar(&a.flags.AgreementAddress, "agreement", "", "Safe Harbor agreement address")
	pf.StringVar(&a.flags.MulticallAddress, "multicall", "", "Multicall contract address")
	pf.StringVar(&a.flags.ContractsInScopeURL, "contracts-url", "", "Contracts in scope CSV URL")
	pf.StringVar(&a.flags.ChainDetailsURL, "chain-details-url", "", "Chain details CSV URL")
	pf.BoolVar(&a.strict, "strict", false, "Fail on chains missing from the chain details sheet")
	pf.IntVar(&a.verbosity, "verbosity", 3, "Log level: 0=crit 1=error 2=warn 3=info 4=debug 5=trace")

	root.AddCommand(a.generateCmd(), a.inspectCmd(), a.verifyCmd())
	return root
}

func setupLogging(verbosity int) {
	handler := log.NewTerminalHandlerWithLevel(os.Stderr, log.FromLegacyLevel(verbosity), false)
	log.SetDefault(log.NewLogger(handler))
}

// loadConfig merges file, environment and flags, in increasing precedence.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	override := func(dst *string, flag, v string) {
		if cmd.Flags().Changed(flag) {
			*dst = v
		}
	}
	override(&cfg.RPCURL, "rpc-url", a.flags.RPCURL)
	override(&cfg.AgreementAddress, "agreement", a.flags.AgreementAddress)
	override(&cfg.MulticallAddress, "multicall", a.flags.MulticallAddress)
	override(&cfg.ContractsInScopeURL, "contracts-url", a.flags.ContractsInScopeURL)
	override(&cfg.ChainDetailsURL, "chain-details-url", a.flags.ChainDetailsURL)
	if cmd.Flags().Changed("strict") {
		cfg.StrictChains = a.strict
	}
	if cmd.Flags().Changed("verbosity") {
		cfg.Verbosity = a.verbosity
	} else if cfg.Verbosity != a.verbosity {
		setupLogging(cfg.Verbosity)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *app) pipeline(cmd *cobra.Command) (*safeharbor.Pipeline, func(), error) {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return a.newPipeline(cmd.Context(), cfg)
}

// dialPipeline wires the CSV sheets and the RPC endpoint from cfg.
func dialPipeline(ctx context.Context, cfg *config.Config) (*safeharbor.Pipeline, func(), error) {
	logger := log.Root()
	reader, err := onchain.Dial(ctx, cfg.RPCURL, cfg.Agreement(), onchain.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	fetcher := csvsource.NewFetcher(
		csvsource.WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}),
		csvsource.WithRetry(cfg.HTTP.Retries, cfg.HTTP.RetryInterval),
		csvsource.WithLogger(logger),
	)
	sheets := csvsource.NewSource(fetcher, cfg.ContractsInScopeURL, cfg.ChainDetailsURL)

	p := &safeharbor.Pipeline{
		Directory: sheets,
		Desired:   sheets,
		Onchain:   reader,
		Agreement: cfg.Agreement(),
		Multicall: cfg.Multicall(),
		Builder: safeharbor.NewBuilder(
			safeharbor.WithLogger(logger),
			safeharbor.WithStrictChains(cfg.StrictChains),
		),
		Logger: logger,
	}
	return p, reader.Close, nil
}
