// Command ch8vm is a headless CHIP-8 host: it loads a ROM, drives the VM's
// host API (Cycle/UpdateTimers) the way a graphical front-end would, and
// prints a state dump instead of rendering a framebuffer. It exists to
// exercise and smoke-test ROMs (including assembler output) without a
// windowing/audio stack.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bradford-hamilton/ch8/internal/chip8"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	currentReleaseVersion = "v0.1.0"
	refreshRate           = 60 // Hz, matches the VM's timer rate
)

var (
	frames         int
	cyclesPerFrame int
	realtime       bool
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "ch8vm <rom>",
	Short: "ch8vm runs a CHIP-8 ROM headlessly and dumps the resulting state",
	Args:  cobra.ExactArgs(1),
	RunE:  runVM,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the ch8vm version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(currentReleaseVersion)
	},
}

func init() {
	rootCmd.Flags().IntVar(&frames, "frames", 120, "number of 60 Hz frames to run, or until halted")
	rootCmd.Flags().IntVar(&cyclesPerFrame, "cycles-per-frame", 15, "VM cycles executed per frame (the conventional ~900 Hz CPU rate)")
	rootCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames against a real 60 Hz ticker instead of running as fast as possible")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "dump VM state after every frame")
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.AddCommand(versionCmd)
}

func runVM(cmd *cobra.Command, args []string) error {
	rom, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrapf(err, "reading %s", args[0])
	}

	vm := chip8.New(nil)
	if err := vm.Load(rom); err != nil {
		return err
	}

	var ticker *time.Ticker
	if realtime {
		ticker = time.NewTicker(time.Second / refreshRate)
		defer ticker.Stop()
	}

	for frame := 0; frame < frames && !vm.Halted(); frame++ {
		if realtime {
			<-ticker.C
		}
		for i := 0; i < cyclesPerFrame && !vm.Halted(); i++ {
			if err := vm.Cycle(); err != nil {
				return errors.Wrapf(err, "frame %d, cycle %d", frame, i)
			}
		}
		vm.UpdateTimers()

		if verbose {
			fmt.Printf("-- frame %d --\n", frame)
			dumpState(vm)
		}
	}

	if !verbose {
		dumpState(vm)
	}
	return nil
}

type stateSnapshot struct {
	PC     uint16
	I      uint16
	SP     uint16
	V      [16]byte
	Delay  byte
	Sound  byte
	Halted bool
	State  chip8.RunState
}

func dumpState(vm *chip8.VM) {
	spew.Dump(stateSnapshot{
		PC:     vm.PC(),
		I:      vm.I(),
		SP:     vm.SP(),
		V:      vm.Registers(),
		Delay:  vm.DelayTimer(),
		Sound:  vm.SoundTimer(),
		Halted: vm.Halted(),
		State:  vm.State(),
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
