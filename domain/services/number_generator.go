package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
)

// RandomSource draws a uniformly random integer in [0, n). Implementations
// must be uniform; the default source is crypto/rand, tests inject a seeded
// one for determinism.
type RandomSource interface {
	Intn(n int) (int, error)
}

type cryptoSource struct{}

func (cryptoSource) Intn(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to draw random number: %w", err)
	}
	return int(v.Int64()), nil
}

// NumberGenerator produces quick-pick and draw number sets: pickCount
// distinct integers in [1, maxNumber], sorted ascending.
type NumberGenerator struct {
	source RandomSource
}

// NewNumberGenerator creates a generator backed by crypto/rand.
func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{source: cryptoSource{}}
}

// NewNumberGeneratorWithSource creates a generator with an injected source.
func NewNumberGeneratorWithSource(source RandomSource) *NumberGenerator {
	return &NumberGenerator{source: source}
}

// Generate draws pickCount distinct numbers from [1, maxNumber] by rejection
// sampling and returns them sorted ascending. pickCount is small relative to
// maxNumber for every catalog game, so rejection sampling terminates fast and
// stays uniform over all C(maxNumber, pickCount) subsets.
func (g *NumberGenerator) Generate(pickCount, maxNumber int) ([]int, error) {
	if pickCount <= 0 || maxNumber <= 0 {
		return nil, fmt.Errorf("%w: pickCount=%d maxNumber=%d", ErrInvalidRange, pickCount, maxNumber)
	}
	if pickCount > maxNumber {
		return nil, fmt.Errorf("%w: cannot pick %d distinct numbers from [1, %d]", ErrInvalidRange, pickCount, maxNumber)
	}

	drawn := make(map[int]bool, pickCount)
	numbers := make([]int, 0, pickCount)
	for len(numbers) < pickCount {
		v, err := g.source.Intn(maxNumber)
		if err != nil {
			return nil, err
		}
		n := v + 1
		if drawn[n] {
			continue
		}
		drawn[n] = true
		numbers = append(numbers, n)
	}

	sort.Ints(numbers)
	return numbers, nil
}
