// Package config loads the YAML file that tells rpc2block which chain the
// RPC dumps come from and how strictly to assemble them.
package config

import (
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/params"
	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML file
type Config struct {
	// Chain is one of mainnet, sepolia, goerli, custom, or empty for no chain config
	Chain       string  `yaml:"chain"`
	ChainID     uint64  `yaml:"chain_id,omitempty"`
	BerlinBlock *uint64 `yaml:"berlin_block,omitempty"`
	LondonBlock *uint64 `yaml:"london_block,omitempty"`
	Verify      Verify  `yaml:"verify"`
	Workers     int     `yaml:"workers"`
}

// Verify toggles the optional assembly checks
type Verify struct {
	Hashes bool `yaml:"hashes"`
	Roots  bool `yaml:"roots"`
}

// Default is used when no config file is given
func Default() *Config {
	return &Config{Workers: 4}
}

// Validate checks field combinations
func (c *Config) Validate() error {
	switch c.Chain {
	case "", "mainnet", "sepolia", "goerli":
		if c.ChainID != 0 || c.BerlinBlock != nil || c.LondonBlock != nil {
			return fmt.Errorf("chain_id and fork blocks are only valid for chain: custom")
		}
	case "custom":
		if c.ChainID == 0 {
			return fmt.Errorf("chain_id is required for chain: custom")
		}
		if c.LondonBlock != nil && c.BerlinBlock == nil {
			return fmt.Errorf("london_block requires berlin_block")
		}
		if c.BerlinBlock != nil && c.LondonBlock != nil && *c.LondonBlock < *c.BerlinBlock {
			return fmt.Errorf("london_block (%d) precedes berlin_block (%d)", *c.LondonBlock, *c.BerlinBlock)
		}
	default:
		return fmt.Errorf("unknown chain %q", c.Chain)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}
	return nil
}

// ChainConfig returns the go-ethereum chain config selected by the file, or
// nil when no chain is set
func (c *Config) ChainConfig() *params.ChainConfig {
	switch c.Chain {
	case "mainnet":
		return params.MainnetChainConfig
	case "sepolia":
		return params.SepoliaChainConfig
	case "goerli":
		return params.GoerliChainConfig
	case "custom":
		return &params.ChainConfig{
			ChainID:             new(big.Int).SetUint64(c.ChainID),
			HomesteadBlock:      zeroBlock(),
			EIP150Block:         zeroBlock(),
			EIP155Block:         zeroBlock(),
			EIP158Block:         zeroBlock(),
			ByzantiumBlock:      zeroBlock(),
			ConstantinopleBlock: zeroBlock(),
			PetersburgBlock:     zeroBlock(),
			IstanbulBlock:       zeroBlock(),
			BerlinBlock:         forkBlock(c.BerlinBlock),
			LondonBlock:         forkBlock(c.LondonBlock),
		}
	default:
		return nil
	}
}

func zeroBlock() *big.Int {
	return new(big.Int)
}

func forkBlock(n *uint64) *big.Int {
	if n == nil {
		return nil
	}
	return new(big.Int).SetUint64(*n)
}

// Load reads, env-expands and validates a YAML config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
