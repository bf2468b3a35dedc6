package machine

import (
	"rotorkit/engine/permutation"
)

// Transform is a named input or output transform sitting between the symbol
// layer and the rotor stack: a plugboard, the Enigma Uhr, or nothing.
type Transform interface {
	// Encrypt maps a contact in the keyboard-to-stack direction.
	Encrypt(c int) int
	// Decrypt maps a contact in the stack-to-printer direction.
	Decrypt(c int) int
}

// PermTransform wraps a permutation as a transform.  Reflecting machines use
// a single PermTransform instance as both input and output transform so a
// mutation of the permutation is visible on both sides.
type PermTransform struct {
	perm *permutation.Permutation
}

// NewPermTransform wraps p.
func NewPermTransform(p *permutation.Permutation) *PermTransform {
	return &PermTransform{perm: p}
}

// Permutation returns the wrapped permutation.
func (t *PermTransform) Permutation() *permutation.Permutation {
	return t.perm
}

// SetPermutation replaces the wrapped permutation.
func (t *PermTransform) SetPermutation(p *permutation.Permutation) {
	t.perm = p
}

// Encrypt applies the permutation.
func (t *PermTransform) Encrypt(c int) int {
	return t.perm.Apply(c)
}

// Decrypt applies the inverse permutation.
func (t *PermTransform) Decrypt(c int) int {
	return t.perm.ApplyInverse(c)
}
