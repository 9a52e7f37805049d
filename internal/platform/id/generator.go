package id

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Generator creates record ids for rows submitted without one.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator returns fixed-length lowercase base36 ids.
type RandomGenerator struct {
	length int
}

func NewRandomGenerator(length int) *RandomGenerator {
	if length <= 0 {
		length = 7
	}
	return &RandomGenerator{length: length}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, g.length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	for i, b := range buf {
		// 252 == 36*7, the largest multiple of 36 that fits a byte
		for b >= 252 {
			var one [1]byte
			if _, err := rand.Read(one[:]); err != nil {
				return "", fmt.Errorf("read random bytes: %w", err)
			}
			b = one[0]
		}
		buf[i] = alphabet[int(b)%len(alphabet)]
	}

	return string(buf), nil
}
