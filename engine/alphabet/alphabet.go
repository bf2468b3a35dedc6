// Package alphabet implements the symbol layer of a rotor machine: the
// bijection between symbols and contacts, and the keyboards and printers
// that translate between the two, including letters/figures shifting.
package alphabet

import (
	"fmt"

	"rotorkit/engine"
)

// Alphabet is a bijection between a set of symbols and {0, ..., n-1}.
type Alphabet struct {
	symbols []rune
	codes   map[rune]int
}

// New creates an alphabet from a symbol string.  Symbol i maps to contact i.
func New(symbols string) *Alphabet {
	runes := []rune(symbols)
	codes := make(map[rune]int, len(runes))
	for i, r := range runes {
		codes[r] = i
	}
	return &Alphabet{symbols: runes, codes: codes}
}

// Latin is the plain a-z alphabet used by most of the machines.
func Latin() *Alphabet {
	return New("abcdefghijklmnopqrstuvwxyz")
}

// N returns the number of symbols.
func (a *Alphabet) N() int {
	return len(a.symbols)
}

// Code returns the contact for a symbol.
func (a *Alphabet) Code(r rune) (int, bool) {
	c, ok := a.codes[r]
	return c, ok
}

// Symbol returns the symbol for a contact.
func (a *Alphabet) Symbol(code int) rune {
	return a.symbols[code]
}

// Contains reports whether the symbol is part of the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.codes[r]
	return ok
}

// String renders the alphabet as its symbol string.
func (a *Alphabet) String() string {
	return string(a.symbols)
}

func invalid(r rune) error {
	return fmt.Errorf("%w: %q", engine.ErrInputInvalid, r)
}
