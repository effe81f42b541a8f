// Command factor prints the prime factorization of each integer given on the command line.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/taurusgroup/factorize/pkg/factor"
	"github.com/taurusgroup/factorize/pkg/pool"
)

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err = run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		stop()
		log.Fatal(err)
	}
}

func run(ctx context.Context, opts *options, out, logs io.Writer) error {
	cfg := factor.DefaultConfig()
	cfg.Rounds = opts.Rounds
	cfg.EcmBound = opts.Bound
	cfg.EcmCurves = opts.Curves
	cfg.SieveMargin = opts.Margin
	cfg.Workers = opts.Workers
	cfg.Log = opts.logger(logs)

	pl := pool.NewPool(opts.Workers)
	defer pl.TearDown()

	for _, n := range opts.Numbers {
		f, err := factor.Decompose(ctx, n, cfg, pl)
		if err != nil {
			return fmt.Errorf("factor %v: %w", n, err)
		}
		if !opts.CBOR {
			fmt.Fprintln(out, f)
			continue
		}
		data, err := f.MarshalBinary()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, hex.EncodeToString(data))
	}
	return nil
}
