// Package engine holds the contracts shared by every component of the rotor
// machine kit: the error kinds surfaced to callers and the RNG plumbing used
// by the randomizers.
//
// All failures reported through these sentinels are local: the operation that
// failed leaves the machine it was invoked on unchanged.
package engine

import (
	"errors"
	"math/rand"
)

var (
	// ErrInputInvalid reports a symbol that is not in the active input alphabet.
	ErrInputInvalid = errors.New("symbol not in active input alphabet")
	// ErrConfigInvalid reports a keyword dictionary that cannot produce a machine.
	ErrConfigInvalid = errors.New("invalid configuration")
	// ErrUnknownKeyword reports a keyword outside the configurator's schema.
	ErrUnknownKeyword = errors.New("unknown configuration keyword")
	// ErrMalformedValue reports a keyword value that fails to parse.
	ErrMalformedValue = errors.New("malformed configuration value")
	// ErrRotorSetMissing reports a configuration naming an unregistered rotor set.
	ErrRotorSetMissing = errors.New("rotor set missing")
	// ErrStateCorrupt reports a state keyfile that fails validation.
	ErrStateCorrupt = errors.New("corrupt machine state")
	// ErrRandomizationFailed reports an exhausted randomizer.
	ErrRandomizationFailed = errors.New("randomization failed")
	// ErrNotSupported reports an operation the machine at hand cannot perform.
	ErrNotSupported = errors.New("operation not supported")
	// ErrSizeMismatch reports two permutations of different sizes being combined.
	ErrSizeMismatch = errors.New("permutation size mismatch")
)

// Rand is the randomness source handed to the randomizers.  Using the rand.Rand
// type directly keeps randomization reproducible in tests via a fixed seed.
type Rand = rand.Rand

// NewRand returns a randomness source seeded from seed.
func NewRand(seed int64) *Rand {
	return rand.New(rand.NewSource(seed))
}
