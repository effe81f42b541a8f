package factor

import (
	"crypto/rand"
	"io"

	"github.com/rs/zerolog"
	"github.com/taurusgroup/factorize/internal/params"
)

// Config tunes Factorize.
//
// Zero fields are replaced by their defaults, except TrialDivisionBound for which 0
// disables trial division.
type Config struct {
	// Rounds is the number of Miller–Rabin rounds per primality test.
	Rounds int

	// EcmBound and EcmCurves form the first ECM budget.
	EcmBound, EcmCurves int
	// EcmEscalations is the number of ECM budgets tried before the quadratic sieve,
	// each one EcmGrowth times larger than the previous.
	EcmEscalations, EcmGrowth int

	// SieveMargin is the number of relations collected beyond the factor base size.
	SieveMargin int
	// SieveMaxOffset is the last offset the quadratic sieve examines.
	SieveMaxOffset int

	// TrialDivisionBound is the largest prime divided out before anything probabilistic runs.
	TrialDivisionBound int

	// Workers is the number of ECM curves tried concurrently. 0 uses every CPU.
	Workers int

	// Rand is the source of all randomness. Defaults to crypto/rand.
	Rand io.Reader
	Log  zerolog.Logger
}

// DefaultConfig returns the configuration used by the command line tool.
func DefaultConfig() Config {
	return Config{
		Rounds:             params.MillerRabinRounds,
		EcmBound:           params.EcmBound,
		EcmCurves:          params.EcmCurves,
		EcmEscalations:     params.EcmEscalations,
		EcmGrowth:          params.EcmGrowth,
		SieveMargin:        params.SieveRelationMargin,
		SieveMaxOffset:     params.SieveMaxOffset,
		TrialDivisionBound: params.TrialDivisionBound,
		Rand:               rand.Reader,
		Log:                zerolog.Nop(),
	}
}

func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.Rounds < 1 {
		c.Rounds = d.Rounds
	}
	if c.EcmBound < 2 {
		c.EcmBound = d.EcmBound
	}
	if c.EcmCurves < 1 {
		c.EcmCurves = d.EcmCurves
	}
	if c.EcmEscalations < 1 {
		c.EcmEscalations = d.EcmEscalations
	}
	if c.EcmGrowth < 1 {
		c.EcmGrowth = d.EcmGrowth
	}
	if c.SieveMargin < 1 {
		c.SieveMargin = d.SieveMargin
	}
	if c.SieveMaxOffset < 1 {
		c.SieveMaxOffset = d.SieveMaxOffset
	}
	if c.TrialDivisionBound < 0 {
		c.TrialDivisionBound = 0
	}
	if c.Rand == nil {
		c.Rand = d.Rand
	}
	return c
}
