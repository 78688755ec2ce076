package threat

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource is the single randomness surface of the engine. Every
// stochastic resolver takes one explicitly; nothing in this package reads
// process-global randomness, so a fixed seed replays a game exactly.
type RandomSource interface {
	Float64() float64 // [0, 1)
}

// cryptoRNG backs DefaultRNG for callers that do not care about replay.
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// fall back to math/rand/v2
		return rand.Float64()
	}
	// top 53 bits => uniform in [0, 1)
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// seededRNG is the replayable stream. One instance must be owned by exactly
// one game instance for that game's lifetime.
type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a deterministic stream for the given seed.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// symmetric draws uniformly from [-halfWidth, halfWidth].
func symmetric(rng RandomSource, halfWidth float64) float64 {
	if halfWidth <= 0 {
		return 0
	}
	return (rng.Float64()*2 - 1) * halfWidth
}
