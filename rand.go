package sdjwt

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Randomness abstracts the entropy source behind the Fisher-Yates shuffle of
// _sd digests and decoy padding-length selection, so tests can pin a
// deterministic order without touching a process-global PRNG.
type Randomness interface {
	// Intn returns a random integer in [0, n). Implementations must not
	// panic for n <= 0; returning 0 is acceptable.
	Intn(n int) int
}

// NewRandomness returns the default, cryptographically secure Randomness.
func NewRandomness() Randomness { return secureRandomness{} }

type secureRandomness struct{}

func (secureRandomness) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Errorf("sdjwt: reading secure random int: %w", err))
	}
	return int(v.Int64())
}

// SequenceRandomness is a deterministic test double that replays a fixed
// sequence of Intn results, wrapping around once exhausted.
type SequenceRandomness struct {
	Values []int
	next   int
}

func (s *SequenceRandomness) Intn(n int) int {
	if n <= 0 || len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	if v >= n {
		v %= n
	}
	return v
}

// shuffle performs an in-place Fisher-Yates shuffle driven by rnd.
func shuffle(rnd Randomness, s []string) {
	for i := len(s) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
