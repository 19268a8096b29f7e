// Command rpc2block turns saved Ethereum JSON-RPC block dumps into
// go-ethereum blocks and reports their hashes and DAG-ETH cids.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/params"
	"github.com/spf13/cobra"

	"github.com/vulcanize/go-rpc-dageth/block"
	"github.com/vulcanize/go-rpc-dageth/config"
	"github.com/vulcanize/go-rpc-dageth/normalize"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	verbosity  int
}

func newRootCmd() *cobra.Command {
	flags := new(rootFlags)
	root := &cobra.Command{
		Use:          "rpc2block",
		Short:        "Assemble go-ethereum blocks from JSON-RPC dumps",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(flags.verbosity)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML config file (chain and verification settings)")
	root.PersistentFlags().IntVar(&flags.verbosity, "verbosity", int(log.LvlInfo), "log level: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace")
	root.AddCommand(normalizeCmd(flags), assembleCmd(flags), batchCmd(flags))
	return root
}

func setupLogging(verbosity int) {
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(verbosity), log.StreamHandler(os.Stderr, log.TerminalFormat(false))))
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func assembleOptions(cfg *config.Config) []block.Option {
	var opts []block.Option
	if cfg.Verify.Hashes {
		opts = append(opts, block.WithVerifyHashes())
	}
	if cfg.Verify.Roots {
		opts = append(opts, block.WithVerifyRoots())
	}
	return opts
}

func chainName(cc *params.ChainConfig) string {
	if cc == nil {
		return "none"
	}
	return cc.ChainID.String()
}

func readRecord(path string) (normalize.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rec, err := normalize.DecodeRecord(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

func readRecords(paths []string) ([]normalize.Record, error) {
	out := make([]normalize.Record, 0, len(paths))
	for _, p := range paths {
		rec, err := readRecord(p)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
