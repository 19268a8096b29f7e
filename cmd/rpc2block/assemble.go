package main

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/vulcanize/go-rpc-dageth/block"
)

func assembleCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "assemble <block.json> [uncle.json...]",
		Short: "Assemble one block and print its hash, cids and transactions",
		Long: `Assemble a block from an eth_getBlockBy* result with full transaction
objects, plus one eth_getUncleByBlockHashAndIndex result per uncle in index order.

Examples:
  rpc2block assemble block.json
  rpc2block assemble block.json uncle0.json uncle1.json --config mainnet.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			blockRec, err := readRecord(args[0])
			if err != nil {
				return err
			}
			uncleRecs, err := readRecords(args[1:])
			if err != nil {
				return err
			}
			chainCfg := cfg.ChainConfig()
			log.Debug("Assembling block", "file", args[0], "uncles", len(uncleRecs), "chain", chainName(chainCfg))
			b, err := block.Assemble(blockRec, uncleRecs, chainCfg, assembleOptions(cfg)...)
			if err != nil {
				log.Error("Block assembly failed", "file", args[0], "err", err)
				return err
			}
			log.Info("Assembled block", "number", b.Number(), "hash", b.Hash(), "txs", len(b.Transactions()), "uncles", len(b.Uncles()))
			return printBlock(cmd.OutOrStdout(), b)
		},
	}
}

func printBlock(w io.Writer, b *types.Block) error {
	links, err := block.LinksOf(b)
	if err != nil {
		return err
	}
	label := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s %s\n", label("Number:      "), bold(b.Number()))
	fmt.Fprintf(w, "%s %s\n", label("Hash:        "), b.Hash().Hex())
	fmt.Fprintf(w, "%s %s\n", label("Header CID:  "), links.Header)
	fmt.Fprintf(w, "%s %s\n", label("Txs CID:     "), links.Transactions)
	fmt.Fprintf(w, "%s %s\n", label("Uncles CID:  "), links.Uncles)
	fmt.Fprintf(w, "%s %d\n", label("Uncles:      "), len(b.Uncles()))
	if ws := b.Withdrawals(); ws != nil {
		fmt.Fprintf(w, "%s %d\n", label("Withdrawals: "), len(ws))
	}
	if len(b.Transactions()) == 0 {
		return nil
	}
	fmt.Fprintln(w)

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	tbl := table.New("#", "Hash", "Type", "To", "Value", "CID").
		WithWriter(w).
		WithHeaderFormatter(headerFmt)
	for i, t := range b.Transactions() {
		to := "(create)"
		if t.To() != nil {
			to = t.To().Hex()
		}
		tbl.AddRow(i, t.Hash().Hex(), t.Type(), to, t.Value(), links.TxCIDs[i])
	}
	tbl.Print()
	return nil
}
