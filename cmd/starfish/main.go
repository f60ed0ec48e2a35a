// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/starfish/logger"
	"github.com/ezrec/starfish/script"
	"github.com/ezrec/starfish/starfish"
	"github.com/ezrec/starfish/translate"
	"github.com/ezrec/starfish/vm"
)

var f = translate.From

var rootCmd = &cobra.Command{
	Use:   "starfish",
	Short: "The Starfish microcoded CPU simulator",
	Long: `Starfish simulates a CPU built from buses, registers, an ALU and
memory, driven one clock cycle at a time by the active set of microcode
commands.

Machines are described by Starlark scripts, or taken from the built-in
Starfish VM preset.
`,
	SilenceUsage: true,
}

// machineOptions select and load the simulated machine.
var machineOptions struct {
	verbose bool
	preset  bool
	image   string
	origin  uint16
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&machineOptions.verbose, "verbose", "v", false, "Verbose mode")
	flags.BoolVarP(&machineOptions.preset, "preset", "p", false, "Run the script against the Starfish VM preset")
	flags.StringVarP(&machineOptions.image, "image", "i", "", "Big-endian memory image to load")
	flags.Uint16Var(&machineOptions.origin, "origin", 0, "Load address of the memory image")
}

func newLogger() *logger.Std {
	return logger.NewStd(os.Stderr, machineOptions.verbose)
}

// loadMachine builds the machine named by args: the preset when no script
// is given, otherwise whatever the script describes. Script print() output
// goes to output.
func loadMachine(ctx context.Context, log logger.Logger, output io.Writer, args []string) (m *vm.Machine, err error) {
	if len(args) == 0 || machineOptions.preset {
		m = starfish.New(log).Machine
	} else {
		m = vm.NewMachine(log)
	}

	if len(args) > 0 {
		s := script.New(m)
		s.Verbose = machineOptions.verbose
		s.Output = output
		_, err = s.ExecFile(ctx, args[0])
		if err != nil {
			var serr *script.ErrScript
			if machineOptions.verbose && errors.As(err, &serr) && serr.Backtrace != "" {
				log.Error(serr.Backtrace)
			}
			return
		}
	}

	if machineOptions.image != "" {
		err = loadImage(m, machineOptions.image, machineOptions.origin)
		if err != nil {
			return
		}
	}

	return
}

func loadImage(m *vm.Machine, path string, origin uint16) (err error) {
	mem := m.Memory()
	if mem == nil {
		err = script.ErrNoMemory
		return
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	_, err = mem.Load(inf, origin)
	if err != nil {
		err = &ErrImage{Path: path, Err: err}
	}
	return
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
