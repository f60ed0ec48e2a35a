package main

import (
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/spf13/cobra"

	"github.com/ezrec/starfish/vm"
)

var dumpOptions struct {
	active bool
}

var dumpCmd = &cobra.Command{
	Use:   "dump [script.star]",
	Short: "Dump the machine as a Graphviz graph",
	Long: `Dump builds the machine and writes its parts and commands to stdout
as a Graphviz dot graph. Every command points to the parts it depends on
and the parts it changes.
`,
	Args: cobra.MaximumNArgs(1),
	RunE: doDump,
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpOptions.active, "active", false, "Only dump the active commands")

	rootCmd.AddCommand(dumpCmd)
}

// dumpPart and dumpCommand are a reduced copy of the machine: memviz follows
// every pointer, and the machine itself holds the whole memory array.
type dumpPart struct {
	ID     int
	Name   string
	Type   string
	Values map[string]uint16
}

type dumpCommand struct {
	Name    string
	Active  bool
	Depends []*dumpPart
	Changes []*dumpPart
}

type dumpMachine struct {
	Parts    []*dumpPart
	Commands []*dumpCommand
}

func newDumpMachine(m *vm.Machine, activeOnly bool) (dm *dumpMachine) {
	dm = &dumpMachine{}

	parts := map[vm.Part]*dumpPart{}
	for _, p := range m.Components() {
		dp := &dumpPart{
			ID:     p.ID(),
			Name:   p.Name(),
			Type:   p.Type(),
			Values: map[string]uint16{},
		}
		for name, value := range p.Values() {
			dp.Values[name] = value
		}
		parts[p] = dp
		dm.Parts = append(dm.Parts, dp)
	}

	ctl := m.Controller()
	for _, cmd := range ctl.Commands() {
		active := ctl.IsActive(cmd)
		if activeOnly && !active {
			continue
		}
		dc := &dumpCommand{
			Name:   cmd.Name,
			Active: active,
		}
		for _, p := range cmd.Depends {
			dc.Depends = append(dc.Depends, parts[p])
		}
		for _, p := range cmd.Changes {
			dc.Changes = append(dc.Changes, parts[p])
		}
		dm.Commands = append(dm.Commands, dc)
	}

	return
}

func doDump(cmd *cobra.Command, args []string) (err error) {
	log := newLogger()

	m, err := loadMachine(cmd.Context(), log, os.Stderr, args)
	if err != nil {
		return
	}

	memviz.Map(os.Stdout, newDumpMachine(m, dumpOptions.active))
	return
}
