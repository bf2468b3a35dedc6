package cmd

import (
	"github.com/spf13/cobra"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt [text]",
	Short: "Decrypt text on the machine in the state file",
	Long: `decrypt runs ciphertext through the machine held in the state keyfile and
prints the plaintext.  Whitespace and grouping in the ciphertext are ignored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCipher(args, false)
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
}
