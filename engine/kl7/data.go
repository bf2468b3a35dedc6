package kl7

import (
	"rotorkit/engine/alphabet"
	"rotorkit/engine/rotorset"
)

// windowAlphabet is the 36-symbol rotor window ring: letters with a digit
// wedged in after every pair and the + sign between t and u.
const windowAlphabet = "ab1cd2ef3gh4ij5kl6mn7op8qr9st+uvwxyz"

// Rotor ids of the thirteen interchangeable wiring cores A..M.
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
)

// WideRing is the notchless stationary ring reserved for the fourth slot.
const WideRing = 0

var coreWirings = []string{
	"ts4ubxn8qoz2hk39yj7afcewmv+pdir16l5g",
	"orzh4w9n7yviptdg+26ajlkceuq1f3bx85sm",
	"smtk7wjxevq56udhnp8g+93a4ziyc2rfo1bl",
	"fwn7pr8362eqksoi4m9+vydgatx15cjhblzu",
	"ype1mrx26wkstjlcz+gd8ihv3q54oa7fb9un",
	"wm4+bo5ds7ur398l2jxz6hyknfp1ecqitgav",
	"2pdvmc47inuk8s5fxgty6lajbhrz+9e3o1qw",
	"gax4scu75oz3+f6jvtlrpdkiw2hyb8n9e1mq",
	"aiw+45jdhbeqlz9y8kg2ns3m16u7pcftvxro",
	"zlkme2pu9w+aisvg6y8n31fcto4d75hbjqxr",
	"on7h+gvfretzs91dkcbqj3u5xipa84y62wlm",
	"zysht+ev23gcoub7kdnm61pf58wil49qarxj",
	"5grlx94cqpfmyks8t61bz+ueon3i2j7dhwva",
}

// notchPatterns are the eleven selectable notch rings, one bit per rotor
// position.
var notchPatterns = []string{
	"010010100100010000000011000000011000",
	"000111000000001000000100000010110010",
	"010110000000001010000100000100001100",
	"001000000001100100000101000000011010",
	"000001000000101010011100010000000001",
	"000000100001010001000101001100000010",
	"001000100001100000011000000000011100",
	"000000101001101000000000101100010000",
	"010101000000100100000110000001000100",
	"000111000000010100100101000000010000",
	"010000100101110110000000000000000010",
}

func wire(s string) []int {
	window := alphabet.New(windowAlphabet)
	out := make([]int, 0, len(s))
	for _, r := range s {
		c, _ := window.Code(r)
		out = append(out, c)
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

func newKL7Set() *rotorset.Set {
	s := rotorset.New("kl7")
	for i, w := range coreWirings {
		s.AddRotor(RotorA+i, wire(w), false)
	}
	for i, p := range notchPatterns {
		s.AddRing(i+1, wireBits(p))
	}
	return s
}
