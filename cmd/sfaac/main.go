/*
Command sfaac compiles SFAA programs to three-address code.

Usage:

    sfaac compile [file]       print the TAC listing (reads stdin without file)
    sfaac tree [--ast] [file]  print the parse tree or the AST
    sfaac table [--html]       print FIRST/FOLLOW sets and the LL(1) table
    sfaac repl                 compile programs interactively

The global flag --trace sets the trace level for all packages, --panic-on-mismatch
lets the parser panic on syntax errors instead of returning them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"
)

func main() {
	err := Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
