// Command ch8dis disassembles a raw CHIP-8 ROM into a textual listing.
//
//	usage: ch8dis <input> [--verbose] [--help] [--version]
package main

import (
	"fmt"
	"os"

	"github.com/bradford-hamilton/ch8/internal/disassembler"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const currentReleaseVersion = "v0.1.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ch8dis <input>",
	Short: "ch8dis disassembles a CHIP-8 ROM into a mnemonic listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisassemble,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the ch8dis version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(currentReleaseVersion)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "prefix each line with address and raw opcode")
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.AddCommand(versionCmd)
}

func runDisassemble(cmd *cobra.Command, args []string) error {
	inputFile := args[0]

	rom, err := os.ReadFile(inputFile)
	if err != nil {
		return errors.Wrapf(err, "reading %s", inputFile)
	}

	fmt.Print(disassembler.Listing(rom, verbose))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
