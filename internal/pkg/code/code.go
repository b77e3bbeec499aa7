package code

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	minCode = 100000
	span    = 900000 // codes in [100000, 999999]
)

// Generator produces one-time passcodes.
type Generator interface {
	Generate() string
}

type generator struct{}

// New returns a Generator producing uniformly distributed 6-digit decimal codes.
func New() Generator { return generator{} }

func (generator) Generate() string {
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		// crypto/rand.Reader does not fail on supported platforms.
		panic(fmt.Sprintf("code: read random: %v", err))
	}
	return fmt.Sprintf("%d", minCode+n.Int64())
}
