package raymondsim

import (
	"math"
	"math/rand"
)

// timePair is one (inter-arrival, execution) duration pair, in
// milliseconds, consumed once per CS cycle (spec §3, §4.1).
type timePair struct {
	interArrivalMS int
	executionMS    int
}

const lambda = 1.0

// serviceRate returns mu for the given load and node count, per spec
// §4.1's three formulas. A zero-or-negative floor is bumped to 1 so the
// generator never divides by zero.
func serviceRate(n int, load SimLoad) float64 {
	mu := math.Floor(float64(n) * lambda / load.serviceDivisor())
	if mu < 1 {
		mu = 1
	}
	return mu
}

// generateTimes produces k (iat, et) pairs using the inverse-transform
// method for the exponential distribution, per spec §4.1:
//
//	iat = round(100 * (-1/lambda) * ln(U))
//	et  = round(100 * (-1/mu)     * ln(U'))
//
// A draw that rounds to zero is repeated until strictly positive.
func generateTimes(rng *rand.Rand, n, k int, load SimLoad) []timePair {
	mu := serviceRate(n, load)
	pairs := make([]timePair, k)
	for i := range pairs {
		pairs[i] = timePair{
			interArrivalMS: positiveExponentialDrawMS(rng, lambda),
			executionMS:    positiveExponentialDrawMS(rng, mu),
		}
	}
	return pairs
}

// positiveExponentialDrawMS draws round(100 * (-1/rate) * ln(U)) with U
// uniform on (0, 1), redrawing until the result is strictly positive.
func positiveExponentialDrawMS(rng *rand.Rand, rate float64) int {
	for {
		u := rng.Float64()
		for u == 0 {
			u = rng.Float64()
		}
		v := math.Round(100 * (-1 / rate) * math.Log(u))
		if v > 0 {
			return int(v)
		}
	}
}

// nodeSeed derives a per-node RNG seed from the run seed so that node
// time sequences are independent yet fully reproducible given (seed,
// id), per spec §9's "Randomness" design note - required for the S5
// deterministic-replay scenario.
func nodeSeed(runSeed int64, id NodeID) int64 {
	// A large odd multiplier spreads consecutive node ids across the
	// seed space without correlating their low bits. The literal is the
	// int64 reading of the bit pattern 0x9E3779B97F4A7C15.
	const spread int64 = -0x61C8864680B583EB
	return runSeed + int64(id)*spread
}
