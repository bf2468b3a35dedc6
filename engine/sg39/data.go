package sg39

import (
	"rotorkit/engine/rotorset"
)

// The catalogue holds ten interchangeable wired rotors and the fixed
// reflector.  Notch rings 1..3 clip onto the three moving rotors.
const (
	Rotor1 = iota + 1
	Rotor2
	Rotor3
	Rotor4
	Rotor5
	Rotor6
	Rotor7
	Rotor8
	Rotor9
	Rotor10
	Reflector = 20
)

// Pin wheel sizes, fast rotor first.
var wheelSizes = []int{21, 23, 25}

var rotorWirings = []string{
	"eixrnvylotcdwhjzbfqumkapsg",
	"vuoqwpmiacnkljegtdfzbsxyhr",
	"sfdhvqcibpraoxkgyemujnztlw",
	"okpwgqlvuydsnibfejtamhzrcx",
	"goburvzkfnaicmyexqpldhtjws",
	"xnozfrsimbahvkpwuqtyjgdlce",
	"wjuvqnykpiholxrzeadgmfbcts",
	"tiehmbwxaqzrnpcdoyfuvgkslj",
	"gsrmflutchwnazdvxeiojpybkq",
	"mpwikjfeqtygzlnravuxchodsb",
}

const reflectorWiring = "rikyqvpubnctojmgeazlhfxwds"

var notchRings = []string{
	"00000000100001000011101001",
	"01000000100110010001000100",
	"00000101000100100010100001",
}

func wire(s string) []int {
	out := make([]int, len(s))
	for i, r := range s {
		out[i] = int(r - 'a')
	}
	return out
}

func wireBits(s string) []int {
	out := make([]int, len(s))
	for i, r := range s {
		out[i] = int(r - '0')
	}
	return out
}

func newSG39Set() *rotorset.Set {
	s := rotorset.New("sg39")
	for i, w := range rotorWirings {
		s.AddRotor(Rotor1+i, wire(w), false)
	}
	s.AddRotor(Reflector, wire(reflectorWiring), true)
	for i, r := range notchRings {
		s.AddRing(i+1, wireBits(r))
	}
	return s
}
