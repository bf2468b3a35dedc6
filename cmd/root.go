// Package cmd implements the rotorsim command line: encrypt, decrypt, step,
// perm and state, all operating on a machine state keyfile.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rotorkit/engine"
	"rotorkit/engine/configurator"
	"rotorkit/engine/machine"
	"rotorkit/engine/rotorset"
)

// stateDelimiter separates the ciphertext from the trailing machine state
// when --state-progression is on.
const stateDelimiter = 0xff

var (
	cfgFile          string
	stateFileName    string
	inputFileName    string
	outputFileName   string
	rotorSetFileName string
	stateProgression bool
	verbose          bool

	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)
)

var rootCmd = &cobra.Command{
	Use:   "rotorsim",
	Short: "A historically accurate rotor cipher machine simulator",
	Long: `rotorsim simulates the Enigma family, Typex, SIGABA, KL-7, Nema and SG39.
A machine lives in a state keyfile; every command loads it, works the machine
and writes the advanced state back.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.  Exit code 1 reports usage and I/O errors;
// exit code 42 reports a state or rotor-set file the simulator refuses to
// load.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		if errors.Is(err, engine.ErrStateCorrupt) || errors.Is(err, engine.ErrRotorSetMissing) {
			os.Exit(42)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.rotorsim.yaml)")
	rootCmd.PersistentFlags().StringVarP(&stateFileName, "state", "s", "", "machine state keyfile")
	rootCmd.PersistentFlags().StringVarP(&inputFileName, "input", "i", "-", "plaintext/ciphertext input file, - for stdin")
	rootCmd.PersistentFlags().StringVarP(&outputFileName, "output", "o", "-", "output file, - for stdout")
	rootCmd.PersistentFlags().StringVarP(&rotorSetFileName, "rotorset", "r", "", "custom rotor-set file")
	rootCmd.PersistentFlags().BoolVar(&stateProgression, "state-progression", false, "append the final state to the output, delimited by 0xFF, instead of rewriting the state file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
}

func initConfig() {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".rotorsim")
	}
	viper.SetDefault("grouping", 5)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	}
	if stateFileName == "" {
		stateFileName = viper.GetString("statefile")
	}
}

// loadMachine restores the machine from the state keyfile, registering the
// custom rotor set first when one is named.
func loadMachine() (*machine.Machine, error) {
	if stateFileName == "" {
		return nil, fmt.Errorf("no state file: use --state or set statefile in the config")
	}
	var sets []*rotorset.Set
	if rotorSetFileName != "" {
		set, err := loadRotorSetFile(rotorSetFileName)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	f, err := os.Open(stateFileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := configurator.FromState(f, sets...)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("machine", m.Name()).
		Str("variant", m.Variant()).
		Str("positions", m.Positions()).
		Msg("state loaded")
	return m, nil
}

func loadRotorSetFile(name string) (*rotorset.Set, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rotorset.Load(f)
}

// saveMachine persists the advanced machine state: back into the state file,
// or after a 0xFF delimiter on the output stream with --state-progression.
func saveMachine(m *machine.Machine, out io.Writer) error {
	if stateProgression {
		if _, err := out.Write([]byte{stateDelimiter}); err != nil {
			return err
		}
		return m.Save(out)
	}
	f, err := os.Create(stateFileName)
	if err != nil {
		return err
	}
	defer f.Close()
	log.Debug().Str("positions", m.Positions()).Msg("state saved")
	return m.Save(f)
}

func openInput() (io.ReadCloser, error) {
	if inputFileName == "" || inputFileName == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(inputFileName)
}

func openOutput() (io.WriteCloser, error) {
	if outputFileName == "" || outputFileName == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(outputFileName)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
