package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var grouped bool

var encryptCmd = &cobra.Command{
	Use:   "encrypt [text]",
	Short: "Encrypt text on the machine in the state file",
	Long: `encrypt runs text through the machine held in the state keyfile and prints
the ciphertext.  Text comes from the argument, or from --input when no
argument is given.  Symbols outside the machine's keyboard are dropped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCipher(args, true)
	},
}

func init() {
	encryptCmd.Flags().BoolVarP(&grouped, "group", "g", false, "print the ciphertext in five-letter groups")
	rootCmd.AddCommand(encryptCmd)
}

func runCipher(args []string, encrypting bool) error {
	m, err := loadMachine()
	if err != nil {
		return err
	}
	text, err := readText(args)
	if err != nil {
		return err
	}
	out, err := openOutput()
	if err != nil {
		return err
	}
	defer out.Close()

	var result string
	if encrypting {
		result = m.Encrypt(text)
		if grouped {
			result = groupLetters(result, viper.GetInt("grouping"))
		}
	} else {
		result = m.Decrypt(text)
	}
	if _, err := fmt.Fprintln(out, result); err != nil {
		return err
	}
	return saveMachine(m, out)
}

func readText(args []string) (string, error) {
	if len(args) == 1 {
		return strings.ToLower(args[0]), nil
	}
	in, err := openInput()
	if err != nil {
		return "", err
	}
	defer in.Close()
	raw, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return strings.ToLower(string(raw)), nil
}

// groupLetters reformats text into space-separated groups, ten groups per
// line, the traditional radiogram layout.
func groupLetters(text string, width int) string {
	if width <= 0 {
		return text
	}
	var b strings.Builder
	for i, r := range []rune(text) {
		if i > 0 && i%width == 0 {
			if (i/width)%10 == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
