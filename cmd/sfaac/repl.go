package main

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/sfaa/compiler"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Compile SFAA programs interactively",
		Long: `repl reads a program line by line. An empty line compiles
the lines entered so far and prints the generated code. Quit with <ctrl>D.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

// Intp holds the state of an interactive session.
type Intp struct {
	unit  *compiler.Unit
	repl  *readline.Instance
	lines []string
}

func runREPL(cmd *cobra.Command, args []string) error {
	unit, err := compiler.New()
	if err != nil {
		return err
	}
	repl, err := readline.New("sfaa> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	pterm.Info.Println("Welcome to the SFAA compiler")
	tracer().Infof("Quit with <ctrl>D")
	intp := &Intp{unit: unit, repl: repl}
	return intp.REPL()
}

// REPL collects input lines until an empty line, then compiles them.
func (intp *Intp) REPL() error {
	for {
		line, err := intp.repl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			intp.lines = intp.lines[:0]
			continue
		} else if err == io.EOF {
			intp.compile()
			return nil
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(line) != "" {
			intp.lines = append(intp.lines, line)
			intp.repl.SetPrompt("   .. ")
			continue
		}
		intp.compile()
	}
}

func (intp *Intp) compile() {
	defer func() {
		intp.lines = intp.lines[:0]
		intp.repl.SetPrompt("sfaa> ")
	}()
	if len(intp.lines) == 0 {
		return
	}
	src := strings.Join(intp.lines, "\n") + "\n"
	result, err := intp.unit.Compile(src)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Info.Printf("%d instructions\n", len(result.Code))
	pterm.Println(result.Listing())
}
