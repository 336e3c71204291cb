package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/sfaa/compiler"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile an SFAA program into three-address code",
		Example: `  sfaac compile square.sfaa -o square.tac`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}
	unit, err := compiler.New()
	if err != nil {
		return err
	}
	result, err := unit.Compile(src)
	if err != nil {
		return err
	}
	w := os.Stdout
	if *compileFlags.output != "" {
		f, err := os.Create(*compileFlags.output)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	_, err = fmt.Fprint(w, result.Listing())
	return err
}
