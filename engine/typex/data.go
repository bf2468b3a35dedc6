package typex

import (
	"rotorkit/engine/rotorset"
)

// Rotor ids of the Typex drum catalogues.  The Y269 issue carries fourteen
// drums a..n; the older SP02390 issue is its first seven.  Every drum can
// serve as a moving rotor or as a stator, straight or reversed.
const (
	RotorA = iota + 1
	RotorB
	RotorC
	RotorD
	RotorE
	RotorF
	RotorG
	RotorH
	RotorI
	RotorJ
	RotorK
	RotorL
	RotorM
	RotorN
	Reflector = 20
)

func wire(s string) []int {
	out := make([]int, len(s))
	for i, r := range s {
		out[i] = int(r - 'a')
	}
	return out
}

func notches(letters string) []int {
	out := make([]int, 26)
	for _, r := range letters {
		out[int(r-'a')] = 1
	}
	return out
}

// Every Typex drum carries the same nine-notch slip ring.
const notchRing = "dghmpqvxz"

var drumWirings = []string{
	"jwusaekxrqnogchtdvyzlfipbm",
	"goywtudmkpzrsfjbivxnhealcq",
	"fzabtilvpruoygwxdmncheqkjs",
	"xispnqwveftadghomkyzljburc",
	"psgywldquzrvbejcianofhktmx",
	"ernpoxtmswzuqjbcfiyhdgaklv",
	"udipvhfkmonqcwbarezsyxgjlt",
	"drwanstjluyqhkxcfpoeigzvbm",
	"yxojnglauvbwdprifkqchzmets",
	"zpdsyxvlregwjutqakichbfmon",
	"sktgwaqmjyxrbicdlvuohnpezf",
	"orqpgimjwctvhfnzlsdxyuebka",
	"fpbekwrivxhqgdnyctamzjluso",
	"vpkwgldteufasxznhbycmiqroj",
}

const reflectorWiring = "xqzmpvljyhogdrkebnuwsftaic"

func newY269Set() *rotorset.Set {
	s := rotorset.New("y269")
	for i, w := range drumWirings {
		s.AddRotor(RotorA+i, wire(w), false)
		s.AddRing(RotorA+i, notches(notchRing))
	}
	s.AddRotor(Reflector, wire(reflectorWiring), true)
	return s
}

func newSP02390Set() *rotorset.Set {
	full := newY269Set()
	ids := []int{RotorA, RotorB, RotorC, RotorD, RotorE, RotorF, RotorG, Reflector}
	return full.Slice("sp02390", ids, ids[:7])
}
