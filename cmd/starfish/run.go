package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/starfish/emulator"
	"github.com/ezrec/starfish/starfish"
	"github.com/ezrec/starfish/vm"
)

var runOptions struct {
	cycles    int
	untilHalt bool
	activate  []string
	quiet     bool
}

var runCmd = &cobra.Command{
	Use:   "run [script.star]",
	Short: "Run a machine",
	Long: `Run builds the machine, runs the script (if any), then runs the
requested number of cycles and prints the value of every part.

With --until-halt, the machine runs until the Halt flag is set; --cycles
then limits the run.
`,
	Args: cobra.MaximumNArgs(1),
	RunE: doRun,
}

func init() {
	flags := runCmd.Flags()
	flags.IntVarP(&runOptions.cycles, "cycles", "n", 0, "Cycles to run after the script")
	flags.BoolVar(&runOptions.untilHalt, "until-halt", false, "Run until the Halt flag is set")
	flags.StringArrayVarP(&runOptions.activate, "activate", "a", nil, "Command to activate before running (repeatable)")
	flags.BoolVarP(&runOptions.quiet, "quiet", "q", false, "Do not print the part values")

	rootCmd.AddCommand(runCmd)
}

func doRun(cmd *cobra.Command, args []string) (err error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log := newLogger()

	m, err := loadMachine(ctx, log, os.Stdout, args)
	if err != nil {
		return
	}

	err = m.Controller().ActivateNamed(runOptions.activate...)
	if err != nil {
		return
	}

	emu := emulator.NewEmulator(m)
	emu.Verbose = machineOptions.verbose

	var until func(m *vm.Machine) bool
	if runOptions.untilHalt {
		halt, ok := m.Flags().Index(starfish.FLAG_HALT)
		if !ok {
			err = ErrNoHalt
			return
		}
		until = func(m *vm.Machine) bool { return m.Flags().Get(halt) }
	}

	if until != nil || runOptions.cycles > 0 {
		var cycles int
		cycles, err = emu.Run(ctx, until, runOptions.cycles)
		log.Info(f("ran %d cycles", cycles))
		if err != nil {
			return
		}
	}

	if !runOptions.quiet {
		err = printValues(os.Stdout, m, term.IsTerminal(int(os.Stdout.Fd())))
	}

	return
}

// printValues lists the value of every part, aligned in columns when
// aligned is set, otherwise one name=value pair per line.
func printValues(w io.Writer, m *vm.Machine, aligned bool) (err error) {
	if !aligned {
		for name, value := range m.Values() {
			_, err = fmt.Fprintf(w, "%v=0x%04x\n", name, value)
			if err != nil {
				return
			}
		}
		return
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for name, value := range m.Values() {
		fmt.Fprintf(tw, "%v\t0x%04x\t%d\n", name, value, value)
	}
	err = tw.Flush()
	return
}
