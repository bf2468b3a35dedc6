package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rotorkit/engine/machine"
)

var permCmd = &cobra.Command{
	Use:   "perm",
	Short: "Print the current contact permutation",
	Long: `perm prints the permutation the machine in the state keyfile induces on its
contacts in its current position, as a comma-separated list.  The machine is
not advanced.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMachine()
		if err != nil {
			return err
		}
		out, err := openOutput()
		if err != nil {
			return err
		}
		defer out.Close()
		_, err = fmt.Fprintln(out, machine.FormatIntList(m.CurrentPermutation()))
		return err
	},
}

func init() {
	rootCmd.AddCommand(permCmd)
}
