package nema

import (
	"strings"

	"rotorkit/engine/rotorset"
)

// The catalogue holds the six interchangeable contact wheels A..F, the
// steppable reflector, an identity wiring for the unwired drive and red
// wheels, twelve drive wheel notch rings and the two red wheel rings.
const (
	ContactA = iota + 1
	ContactB
	ContactC
	ContactD
	ContactE
	ContactF
	Reflector
	identityWheel
)

// Drive wheel notch rings are numbered as etched on the hardware.
const (
	DriveRingFirst = 12
	DriveRingLast  = 23
)

// Red wheel rings: the war machine issue and the training machine issue.
const (
	WarRing      = 100
	TrainingRing = 101
)

var contactWirings = []string{
	"ipubscnzveotqfmhydrkjwglxa",
	"fkehcgdxtpyjozbunswvrialqm",
	"ekqnubhajgyszmpdtxrifwolvc",
	"nwuyomhlrdqxzstegfvicpjbak",
	"dowrlczyvnxjbtkmagfqisheup",
	"xoqkhsaevdznuctgiyrwjpfbml",
}

const reflectorWiring = "tipsqvwmbkjyhxucezdaofgnlr"

var driveRings = []string{
	"10000010100001100011010101",
	"01000000100011110100100011",
	"00111111010010001111100000",
	"10001001101010011011100100",
	"00111000111101100100100000",
	"01000011010001011010100011",
	"01010110100010111010101100",
	"10011011010000110100101001",
	"11000101000110100110000100",
	"11000000101011001110000001",
	"01010010001110110001010001",
	"10110000100101010010100111",
}

// Red wheel rings carry a two-bit value per position: bit 1 is the left
// notch row, bit 0 the right.
var (
	warRing      = parseRed("3,3,3,0,1,1,3,1,1,0,1,3,3,2,1,1,1,2,2,0,3,1,3,3,0,1")
	trainingRing = parseRed("3,0,0,0,3,3,0,0,1,2,0,0,1,1,3,2,1,1,1,3,0,0,2,1,3,3")
)

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

func parseRed(s string) []int {
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		out[i] = int(p[0] - '0')
	}
	return out
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func newNemaSet() *rotorset.Set {
	s := rotorset.New("nema")
	for i, w := range contactWirings {
		s.AddRotor(ContactA+i, wire(w), false)
	}
	s.AddRotor(Reflector, wire(reflectorWiring), true)
	s.AddRotor(identityWheel, identity(26), true)
	for i, r := range driveRings {
		s.AddRing(DriveRingFirst+i, wireBits(r))
	}
	s.AddRing(WarRing, warRing)
	s.AddRing(TrainingRing, trainingRing)
	return s
}
