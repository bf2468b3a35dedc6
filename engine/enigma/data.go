package enigma

import (
	"rotorkit/engine/rotorset"
)

// Rotor and ring ids of the Enigma rotor sets.  The wheels I..VIII of the
// services machines share ids with their ring patterns; the entry wheels and
// reflectors are const under randomization.
const (
	RotorI = iota + 1
	RotorII
	RotorIII
	RotorIV
	RotorV
	RotorVI
	RotorVII
	RotorVIII
	RotorBeta
	RotorGamma
	UKWB
	UKWC
	UKWBThin
	UKWCThin
	ETWIdentity
	ETWQwertz
)

// UKWDPlaceholder is the rotor id recorded for a reflector slot carrying the
// rewirable UKW-D; the actual involution is stored with the machine state.
const UKWDPlaceholder = 100

func wire(s string) []int {
	out := make([]int, len(s))
	for i, r := range s {
		out[i] = int(r - 'a')
	}
	return out
}

// entry builds an entry-wheel permutation from its keyboard order: the i-th
// letter of the order is the key wired to contact i.
func entry(order string) []int {
	out := make([]int, len(order))
	for i, r := range order {
		out[int(r-'a')] = i
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

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// newServicesSet builds the catalogue shared by the Services, M3 and M4
// machines.
func newServicesSet() *rotorset.Set {
	s := rotorset.New("enigma")
	s.AddRotor(RotorI, wire("ekmflgdqvzntowyhxuspaibrcj"), false)
	s.AddRotor(RotorII, wire("ajdksiruxblhwtmcqgznpyfvoe"), false)
	s.AddRotor(RotorIII, wire("bdfhjlcprtxvznyeiwgakmusqo"), false)
	s.AddRotor(RotorIV, wire("esovpzjayquirhxlnftgkdcmwb"), false)
	s.AddRotor(RotorV, wire("vzbrgityupsdnhlxawmjqofeck"), false)
	s.AddRotor(RotorVI, wire("jpgvoumfyqbenhzrdkasxlictw"), false)
	s.AddRotor(RotorVII, wire("nzjhgrcxmyswboufaivlpekqdt"), false)
	s.AddRotor(RotorVIII, wire("fkqhtlxocbjspdzramewniuygv"), false)
	s.AddRotor(RotorBeta, wire("leyjvcnixwpbqmdrtakzgfuhos"), false)
	s.AddRotor(RotorGamma, wire("fsokanuerhmbtiycwlqpzxvgjd"), false)
	s.AddRotor(UKWB, wire("yruhqsldpxngokmiebfzcwvjat"), true)
	s.AddRotor(UKWC, wire("fvpjiaoyedrzxwgctkuqsbnmhl"), true)
	s.AddRotor(UKWBThin, wire("enkqauywjicopblmdxzvfthrgs"), true)
	s.AddRotor(UKWCThin, wire("rdobjntkvehmlfcwzaxgyipsuq"), true)
	s.AddRotor(ETWIdentity, identity(26), true)
	s.AddRotor(UKWDPlaceholder, identity(26), true)

	s.AddRing(RotorI, notches("q"))
	s.AddRing(RotorII, notches("e"))
	s.AddRing(RotorIII, notches("v"))
	s.AddRing(RotorIV, notches("j"))
	s.AddRing(RotorV, notches("z"))
	s.AddRing(RotorVI, notches("zm"))
	s.AddRing(RotorVII, notches("zm"))
	s.AddRing(RotorVIII, notches("zm"))
	return s
}

// ServicesSet returns a copy of the Services/M3/M4 catalogue for machines
// that borrow Enigma wirings, such as the SG39 Enigma emulation.
func ServicesSet() *rotorset.Set {
	return newServicesSet()
}

// Rotor ids of the Abwehr, Railway, Tirpitz and KD catalogues.
const (
	VariantRotor1 = iota + 1
	VariantRotor2
	VariantRotor3
	VariantRotor4
	VariantRotor5
	VariantRotor6
	VariantRotor7
	VariantRotor8
	VariantUKW    = 20
	VariantETW    = 21
)

func newAbwehrSet() *rotorset.Set {
	s := rotorset.New("abwehr")
	s.AddRotor(VariantRotor1, wire("dmtwsilruyqnkfejcazbpgxohv"), false)
	s.AddRotor(VariantRotor2, wire("hqzgpjtmoblncifdyawveusrkx"), false)
	s.AddRotor(VariantRotor3, wire("uqntlszfmrehdpxkibvygjcwoa"), false)
	s.AddRotor(VariantUKW, wire("rulqmzjsygocetkwdahnbxpvif"), true)
	s.AddRotor(VariantETW, entry("qwertzuioasdfghjkpyxcvbnml"), true)
	s.AddRing(VariantRotor1, notches("suvwzabcefgiklopq"))
	s.AddRing(VariantRotor2, notches("stvyzacdfghkmnq"))
	s.AddRing(VariantRotor3, notches("uwxaefhkmnr"))
	// The Abwehr reflector is gear-driven too; it carries a plain ring.
	s.AddRing(VariantUKW, notches(""))
	return s
}

func newRailwaySet() *rotorset.Set {
	s := rotorset.New("railway")
	s.AddRotor(VariantRotor1, wire("jgdqoxuscamifrvtpnewkblzyh"), false)
	s.AddRotor(VariantRotor2, wire("ntzpsfbokmwrcjdivlaeyuxhgq"), false)
	s.AddRotor(VariantRotor3, wire("jviubhtcdyakeqzposgxnrmwfl"), false)
	s.AddRotor(VariantUKW, wire("qyhognecvpuztfdjaxwmkisrbl"), true)
	s.AddRotor(VariantETW, entry("qwertzuioasdfghjkpyxcvbnml"), true)
	s.AddRing(VariantRotor1, notches("n"))
	s.AddRing(VariantRotor2, notches("e"))
	s.AddRing(VariantRotor3, notches("y"))
	return s
}

func newTirpitzSet() *rotorset.Set {
	s := rotorset.New("tirpitz")
	s.AddRotor(VariantRotor1, wire("kptyuelocvgrfqdanjmbswhzxi"), false)
	s.AddRotor(VariantRotor2, wire("uphzlweqmtdjxcaksoigvbyfnr"), false)
	s.AddRotor(VariantRotor3, wire("qudlyrfekonvzaxwhmgpjbsict"), false)
	s.AddRotor(VariantRotor4, wire("ciwtbkxnrespflydagvhquojzm"), false)
	s.AddRotor(VariantRotor5, wire("uaxgisnjbverdylfzwtpckohmq"), false)
	s.AddRotor(VariantRotor6, wire("xfuzgalvhcnysewqtdmrbkpioj"), false)
	s.AddRotor(VariantRotor7, wire("bjvftxplnayozikwgdqeruchsm"), false)
	s.AddRotor(VariantRotor8, wire("ymtpnzhwkodajxeluqvgcbisfr"), false)
	s.AddRotor(VariantUKW, wire("gekpbtaumocniljdxzyfhwvqsr"), true)
	s.AddRotor(VariantETW, entry("kzrouqhyaigblwvstdxfpnmcje"), true)
	s.AddRing(VariantRotor1, notches("wzekq"))
	s.AddRing(VariantRotor2, notches("wzflr"))
	s.AddRing(VariantRotor3, notches("wzekq"))
	s.AddRing(VariantRotor4, notches("wzflr"))
	s.AddRing(VariantRotor5, notches("ycfkr"))
	s.AddRing(VariantRotor6, notches("xeimq"))
	s.AddRing(VariantRotor7, notches("ycfkr"))
	s.AddRing(VariantRotor8, notches("xeimq"))
	return s
}

func newKDSet() *rotorset.Set {
	s := rotorset.New("kd")
	s.AddRotor(VariantRotor1, wire("veziojcxkyduntwaplqgbhsfmr"), false)
	s.AddRotor(VariantRotor2, wire("hgrbsjzetdlvpmqycxaokinfuw"), false)
	s.AddRotor(VariantRotor3, wire("nwlhxgrbyojsazdvtpkfqmeuic"), false)
	s.AddRotor(VariantETW, entry("qwertzuioasdfghjkpyxcvbnml"), true)
	s.AddRotor(UKWDPlaceholder, identity(26), true)
	s.AddRing(VariantRotor1, notches("suyaehlnq"))
	s.AddRing(VariantRotor2, notches("suyaehlnq"))
	s.AddRing(VariantRotor3, notches("suyaehlnq"))
	return s
}
