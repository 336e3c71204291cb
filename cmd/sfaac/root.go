package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// tracer traces with key 'sfaa.cli'.
func tracer() tracing.Trace {
	return tracing.Select("sfaa.cli")
}

var rootFlags = struct {
	trace   *string
	panicky *bool
	dest    *string
}{}

var rootCmd = &cobra.Command{
	Use:   "sfaac",
	Short: "Compile SFAA programs to three-address code",
	Long: `sfaac drives the SFAA compiler pipeline:
- tokenizes and parses a program with a table-driven LL(1) parser,
- normalizes the parse tree to an AST,
- generates three-address code.
Sub-commands expose the intermediate artifacts for debugging.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: configure,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "Error", "trace level [Debug|Info|Error]")
	rootFlags.panicky = rootCmd.PersistentFlags().Bool("panic-on-mismatch", false, "panic on syntax errors")
	rootFlags.dest = rootCmd.PersistentFlags().String("trace-to", "", "trace destination (Stdout, Stderr or file URI)")
}

// tracedPackages lists the tracer keys of the compiler packages.
var tracedPackages = []string{
	"sfaa.ll", "sfaa.parser", "sfaa.tree", "sfaa.scanner", "sfaa.lang",
	"sfaa.ast", "sfaa.runtime", "sfaa.tac", "sfaa.compiler", "sfaa.cli",
}

// configure sets up the global configuration and tracing from the command
// line flags. All package tracers log with the Go standard logger.
func configure(cmd *cobra.Command, args []string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":           "go",
		"panic-on-grammar-mismatch": *rootFlags.panicky,
	}
	if *rootFlags.dest != "" {
		conf["tracing.destination"] = *rootFlags.dest
	}
	conf["trace.root"] = *rootFlags.trace
	for _, key := range tracedPackages {
		conf["trace."+key] = *rootFlags.trace
	}
	gconf.Initialize(conf)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("cannot configure tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Debugf("trace level is %s", *rootFlags.trace)
	initDisplay()
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	if tracing.TraceLevelFromString(*rootFlags.trace) == tracing.LevelDebug {
		pterm.EnableDebugMessages()
	}
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// readSource reads a program from the file named by the first argument, or
// from stdin if there is none.
func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		src, err := io.ReadAll(os.Stdin)
		return string(src), err
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(src), nil
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
