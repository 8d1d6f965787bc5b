// Package config loads the reconciler configuration from a YAML file and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// DefaultMulticallAddress is the multicall deployment the agreement owner
// executes batches through.
const DefaultMulticallAddress = "0x5e227AD1969Ea493B43F840cfF78d08a6fc17796"

// Environment variables that override file values.
const (
	EnvRPCURL          = "ETH_RPC_URL"
	EnvAgreement       = "SAFEHARBOR_AGREEMENT_ADDRESS"
	EnvMulticall       = "SAFEHARBOR_MULTICALL_ADDRESS"
	EnvContractsURL    = "SAFEHARBOR_CONTRACTS_URL"
	EnvChainDetailsURL = "SAFEHARBOR_CHAIN_DETAILS_URL"
)

var (
	ErrMissingRPCURL    = errors.New("config: rpc_url is not set (set ETH_RPC_URL or rpc_url)")
	ErrMissingAgreement = errors.New("config: agreement_address is not set")
	ErrMissingSheet     = errors.New("config: contracts_in_scope_url and chain_details_url must be set")
)

// Config holds everything one reconciliation pass needs.
type Config struct {
	RPCURL              string     `yaml:"rpc_url"`
	AgreementAddress    string     `yaml:"agreement_address"`
	MulticallAddress    string     `yaml:"multicall_address"`
	ContractsInScopeURL string     `yaml:"contracts_in_scope_url"`
	ChainDetailsURL     string     `yaml:"chain_details_url"`
	StrictChains        bool       `yaml:"strict_chains"`
	Verbosity           int        `yaml:"verbosity"`
	HTTP                HTTPConfig `yaml:"http"`
}

// HTTPConfig tunes the CSV downloads.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	Retries       uint64        `yaml:"retries"`
	RetryInterval time.Duration `yaml:"retry_interval"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MulticallAddress: DefaultMulticallAddress,
		Verbosity:        3,
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			Retries:       3,
			RetryInterval: time.Second,
		},
	}
}

// Load reads the YAML file at path over the defaults and applies the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := cfg.decode(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides fields with any set environment variable.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.RPCURL, EnvRPCURL)
	set(&c.AgreementAddress, EnvAgreement)
	set(&c.MulticallAddress, EnvMulticall)
	set(&c.ContractsInScopeURL, EnvContractsURL)
	set(&c.ChainDetailsURL, EnvChainDetailsURL)
}

// Validate checks that the configuration is complete enough to run.
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return ErrMissingRPCURL
	}
	if c.AgreementAddress == "" {
		return ErrMissingAgreement
	}
	if !common.IsHexAddress(c.AgreementAddress) {
		return fmt.Errorf("config: invalid agreement_address %q", c.AgreementAddress)
	}
	if !common.IsHexAddress(c.MulticallAddress) {
		return fmt.Errorf("config: invalid multicall_address %q", c.MulticallAddress)
	}
	if c.ContractsInScopeURL == "" || c.ChainDetailsURL == "" {
		return ErrMissingSheet
	}
	return nil
}

// Agreement returns the agreement address. Call Validate first.
func (c *Config) Agreement() common.Address {
	return common.HexToAddress(c.AgreementAddress)
}

// Multicall returns the multicall address. Call Validate first.
func (c *Config) Multicall() common.Address {
	return common.HexToAddress(c.MulticallAddress)
}
