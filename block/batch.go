package block

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"golang.org/x/sync/errgroup"

	"github.com/vulcanize/go-rpc-dageth/normalize"
)

// Input is one block record and its uncle records
type Input struct {
	Block  normalize.Record
	Uncles []normalize.Record
}

// AssembleBatch assembles many blocks concurrently, at most workers at a time
// (unbounded when workers <= 0). The result is in input order. The first
// failure cancels the blocks not yet started and is returned.
func AssembleBatch(ctx context.Context, inputs []Input, cfg *params.ChainConfig, workers int, opts ...Option) ([]*types.Block, error) {
	out := make([]*types.Block, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b, err := Assemble(inputs[i].Block, inputs[i].Uncles, cfg, opts...)
			if err != nil {
				return fmt.Errorf("block input %d: %w", i, err)
			}
			out[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
