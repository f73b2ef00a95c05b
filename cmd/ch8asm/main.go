// Command ch8asm assembles CHIP-8 mnemonic source into raw ROM bytes.
//
//	usage: ch8asm <input> [-o <output>] [--verbose] [--help] [--version]
package main

import (
	"fmt"
	"os"

	"github.com/bradford-hamilton/ch8/internal/assembler"
	"github.com/spf13/cobra"
)

// currentReleaseVersion is printed by the version subcommand.
const currentReleaseVersion = "v0.1.0"

var (
	outputFile string
	verbose    bool
)

// rootCmd assembles its single positional argument and writes the result
// to outputFile (default out.ch8).
var rootCmd = &cobra.Command{
	Use:   "ch8asm <input>",
	Short: "ch8asm assembles CHIP-8 mnemonic source into ROM bytes",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssemble,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the ch8asm version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(currentReleaseVersion)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "out.ch8", "output file path")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "enable verbose output")
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.AddCommand(versionCmd)
}

func runAssemble(cmd *cobra.Command, args []string) error {
	inputFile := args[0]

	if verbose {
		fmt.Printf("[verbose] assembling %s to %s\n", inputFile, outputFile)
	}

	asm, err := assembler.FromFile(inputFile)
	if err != nil {
		return err
	}
	if err := asm.WriteToFile(outputFile); err != nil {
		return err
	}

	if verbose {
		fmt.Printf("[verbose] wrote %s (%d bytes)\n", outputFile, len(asm.GetBytes()))
	} else {
		fmt.Printf("assembled successfully to %s\n", outputFile)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
