package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var stepCmd = &cobra.Command{
	Use:   "step [n]",
	Short: "Advance the machine without enciphering",
	Long: `step advances the machine in the state keyfile by n characters (default 1)
and prints the rotor positions after each step.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := 1
		if len(args) == 1 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 {
				return fmt.Errorf("step count must be a positive integer, got %q", args[0])
			}
			n = v
		}
		m, err := loadMachine()
		if err != nil {
			return err
		}
		out, err := openOutput()
		if err != nil {
			return err
		}
		defer out.Close()
		for i := 0; i < n; i++ {
			if _, err := fmt.Fprintln(out, m.Step()); err != nil {
				return err
			}
		}
		return saveMachine(m, out)
	},
}

func init() {
	rootCmd.AddCommand(stepCmd)
}
