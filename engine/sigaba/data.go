package sigaba

import (
	"rotorkit/engine/rotorset"
)

// The catalogue holds the ten interchangeable 26-contact rotors shared by
// the cipher and control banks (ids 1..10 for rotors 0..9) and the five
// 10-contact index rotors (ids 11..15 for rotors 0..4).
const (
	bigRotorBase   = 1
	indexRotorBase = 11
)

var bigWirings = []string{
	"ychlqsugbdixnzkerpvjtawfom",
	"inpxbwetguysaochvldmqkzjfr",
	"wndriozptaxhfjyqbmsvekucgl",
	"tzghobkrvuxlqdmpnfwcjyeias",
	"ywtahrqjvlcexungbipzmsdfok",
	"qslrbtekogaicfwyvmhjnxzudp",
	"chjdqignbsakvtuoxfwleprmzy",
	"cdfajxtimnbeqhsugrylwzkvpo",
	"xhfeszdnrbcgkqijltvmuoyapw",
	"ezjqxmogytcsfriupvnadlhwbk",
}

var indexWirings = []string{
	"7591482630",
	"3810592764",
	"4086153297",
	"3980526174",
	"6497135280",
}

func wire(s string) []int {
	out := make([]int, len(s))
	for i, r := range s {
		out[i] = int(r - 'a')
	}
	return out
}

func wireDigits(s string) []int {
	out := make([]int, len(s))
	for i, r := range s {
		out[i] = int(r - '0')
	}
	return out
}

func newSigabaSet() *rotorset.Set {
	s := rotorset.New("sigaba")
	for i, w := range bigWirings {
		s.AddRotor(bigRotorBase+i, wire(w), false)
	}
	for i, w := range indexWirings {
		s.AddRotor(indexRotorBase+i, wireDigits(w), false)
	}
	return s
}
