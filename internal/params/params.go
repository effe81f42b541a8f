package params

const (
	// MillerRabinRounds is the number of independent random bases tried by the primality oracle.
	// 10 is the minimum the engine is tuned for; callers needing stronger certainty should raise it.
	MillerRabinRounds = 10

	// EcmBound and EcmCurves form the first ECM budget tried by the orchestrator.
	EcmBound  = 2_000
	EcmCurves = 25

	// EcmEscalations is the number of ECM budgets tried before switching to the quadratic sieve.
	// Every escalation multiplies both the bound and the curve count by EcmGrowth.
	EcmEscalations = 3
	EcmGrowth      = 4

	// SmoothEcmBound and SmoothEcmCurves are the fixed ECM budget of the smoothness factorizer.
	SmoothEcmBound  = 20_000
	SmoothEcmCurves = 50

	// SieveRelationMargin is the number of relations collected beyond the factor base size.
	// Any value >= 1 guarantees a linear dependency over GF(2).
	SieveRelationMargin = 5

	// SmoothnessScale multiplies the sub-exponential estimate of the smoothness bound.
	// Sieving a single polynomial from ⌊√n⌋ needs a larger base than the textbook optimum.
	SmoothnessScale = 4

	// MinSmoothnessBound is a floor on the smoothness bound, which is otherwise too small
	// to find relations for inputs of a few digits.
	MinSmoothnessBound = 200

	// MaxSmoothnessBound caps the smoothness bound so that the factor base and the
	// exponent matrix stay within memory. Inputs reaching it are beyond a single polynomial sieve.
	MaxSmoothnessBound = 1 << 17

	// SieveBlockSize is the number of consecutive offsets pre-sieved at once.
	SieveBlockSize = 1 << 12

	// SieveMaxOffset is the largest offset from ⌊√n⌋ the sieve examines before giving up.
	SieveMaxOffset = 1 << 24

	// TrialDivisionBound is the largest prime the orchestrator divides out before
	// running the probabilistic machinery.
	TrialDivisionBound = 1 << 10

	// SeedBytes is the size of the secret seeding each family of random streams.
	SeedBytes = 32
)
