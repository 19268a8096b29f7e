package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"

	"github.com/vulcanize/go-rpc-dageth/block"
	"github.com/vulcanize/go-rpc-dageth/header"
)

func batchCmd(flags *rootFlags) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "batch <block.json>...",
		Short: "Assemble many uncle-free block dumps concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			records, err := readRecords(args)
			if err != nil {
				return err
			}
			inputs := make([]block.Input, len(records))
			for i, rec := range records {
				inputs[i] = block.Input{Block: rec}
			}
			blocks, err := block.AssembleBatch(cmd.Context(), inputs, cfg.ChainConfig(), cfg.Workers, assembleOptions(cfg)...)
			if err != nil {
				return err
			}
			log.Info("Assembled batch", "blocks", len(blocks), "workers", cfg.Workers)
			out := cmd.OutOrStdout()
			for i, b := range blocks {
				c, err := header.CID(b.Header())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%v\t%s\t%d\t%s\n", args[i], b.Number(), b.Hash().Hex(), len(b.Transactions()), c)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent assemblies (overrides config; 0 = unbounded)")
	return cmd
}
