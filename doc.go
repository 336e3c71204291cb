/*
Package sfaa is the front-to-middle end of a compiler for SFAA, a small
imperative language.

The compiler turns a declarative grammar into an LL(1) parsing table, drives
that table over a token stream to build a parse tree, normalizes the parse
tree into an abstract syntax tree and lowers the AST into three-address code
(TAC) with explicit block labels. Package structure is as follows:

■ ll: Package ll holds the grammar model, FIRST/FOLLOW analysis and the
LL(1) parsing table. Sub-package parser contains the table-driven parser.

■ tree: Package tree implements an ordered tree as an arena of nodes,
navigated and mutated through a cursor.

■ ast: Package ast normalizes parse trees into abstract syntax trees.

■ tac: Package tac generates three-address code from an AST.

■ runtime: Package runtime provides the symbol table and the constant table.

■ lang: Package lang defines the SFAA language (tokens, grammar, lexer).

■ compiler: Package compiler ties the pipeline together.

■ cmd/sfaac: Command sfaac is a command line driver for the compiler.

The base package contains data types which are used throughout all the other
packages: tokens, spans, registry handles and the error taxonomy.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sfaa
