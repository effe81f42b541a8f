package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"

	"github.com/rs/zerolog"
	"github.com/taurusgroup/factorize/internal/params"
)

type options struct {
	Numbers []*big.Int
	Rounds  int
	Bound   int
	Curves  int
	Margin  int
	Workers int
	CBOR    bool
	Verbose bool
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	fs := flag.NewFlagSet("factor", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: factor [flags] <n>...")
		fs.PrintDefaults()
	}

	var (
		rounds  = fs.Int("rounds", params.MillerRabinRounds, "Miller–Rabin rounds per primality test")
		bound   = fs.Int("ecm-bound", params.EcmBound, "initial ECM stage one bound")
		curves  = fs.Int("ecm-curves", params.EcmCurves, "initial number of ECM curves")
		margin  = fs.Int("margin", params.SieveRelationMargin, "extra relations collected by the quadratic sieve")
		workers = fs.Int("workers", 0, "number of workers (default every CPU)")
		asCBOR  = fs.Bool("cbor", false, "print each factorization as hex encoded CBOR")
		verbose = fs.Bool("v", false, "log progress to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return nil, errors.New("missing integer to factor")
	}
	if *rounds < 1 || *bound < 2 || *curves < 1 || *margin < 1 || *workers < 0 {
		return nil, errors.New("numeric flags must be positive")
	}

	opts := &options{
		Rounds:  *rounds,
		Bound:   *bound,
		Curves:  *curves,
		Margin:  *margin,
		Workers: *workers,
		CBOR:    *asCBOR,
		Verbose: *verbose,
	}
	for _, arg := range fs.Args() {
		n, ok := new(big.Int).SetString(arg, 10)
		if !ok || n.Sign() < 1 {
			return nil, fmt.Errorf("invalid positive integer %q", arg)
		}
		opts.Numbers = append(opts.Numbers, n)
	}
	return opts, nil
}

func (o *options) logger(w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if o.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}
