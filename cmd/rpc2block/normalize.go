package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vulcanize/go-rpc-dageth/header"
	"github.com/vulcanize/go-rpc-dageth/normalize"
	"github.com/vulcanize/go-rpc-dageth/shared"
	"github.com/vulcanize/go-rpc-dageth/tx"
)

func normalizeCmd(_ *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <block.json>",
		Short: "Print the normalized header and transaction field sets as DAG-JSON",
		Long: `Normalize an eth_getBlockByNumber/eth_getBlockByHash result (full
transaction objects) and print one DAG-JSON line for the header followed by
one line per transaction, in block order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := readRecord(args[0])
			if err != nil {
				return err
			}
			return writeNormalized(cmd.OutOrStdout(), rec)
		},
	}
}

func writeNormalized(w io.Writer, rec normalize.Record) error {
	fields, err := header.Normalize(rec)
	if err != nil {
		return err
	}
	if err := writeLine(w, fields); err != nil {
		return err
	}
	txRecords, err := rec.Records("transactions")
	if err != nil {
		return err
	}
	for i, txRec := range txRecords {
		txFields, err := normalize.NormalizeAt(shared.IndexPath("transactions", i), tx.Schema, txRec)
		if err != nil {
			return err
		}
		if err := writeLine(w, txFields); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(w io.Writer, fields *normalize.FieldSet) error {
	if err := fields.EncodeDagJSON(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
