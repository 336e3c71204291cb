/*
Package lexmach provides an adapter to use the lexmachine scanner generator
as a scanner.Tokenizer.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing literals, keywords and
regular expressions:

	var literals []string       // The tokens representing literal strings
	var keywords []string       // The keyword tokens
	var tokenIds map[string]int // A map from the token names to their int IDs

	init := func(lexer *lexmachine.Lexer) {
		// lexmach.Skip         ignores the scanned match
		// lexmach.MakeToken    wraps a scanned match into a token
		// lexmach.HandleToken  wraps a match into a token carrying a
		//                      symbol or constant table handle
	}

NewLMAdapter compiles the DFA; it returns an error if compilation failed.

	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)

A scanner is instantiated for each concrete input. Tokens are read until a
token of category sfaa.EndOfInput appears.

	scan, err := LM.Scanner("input string to tokenize")
	for tok := scan.NextToken(); tok.TokType() != sfaa.EndOfInput; tok = scan.NextToken() {
		…
	}

Errors raised by actions, and input no rule matches, are reported to the
scanner's error handler. Unmatched input is skipped.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
