// rotorsim simulates historically accurate rotor cipher machines: the Enigma
// family, Typex, SIGABA, KL-7, Nema and SG39.
package main

import (
	"rotorkit/cmd"
)

func main() {
	cmd.Execute()
}
