package kaa

import (
	"iter"
)

// Statement is a parsed line of KAA source.
type Statement struct {
	LineNo     int
	Mnemonic   string   // Upper-case mnemonic, or an unrecognized identifier.
	Parameters []int    // Parameter values, symbols resolved.
	Words      []string // Source words of the statement.
}

// parser states
type parseState int

const (
	stateHead parseState = iota
	stateFirst
	stateParameter
	stateSeparator
)

// Statements parses a token stream into statements.
//
//	program       := (statement EOL)*
//	statement     := mnemonic parameterList? | ε
//	parameterList := parameter (',' parameter)*
//
// Statements stops at the first error, which is yielded with the line
// number of the offending token.
func Statements(tokens iter.Seq2[Token, error]) iter.Seq2[Statement, error] {
	return func(yield func(Statement, error) bool) {
		var stmt Statement
		state := stateHead

		fail := func(tok Token, err error) {
			yield(Statement{LineNo: tok.LineNo}, ErrToken{Token: tok, Err: err})
		}

		for tok, err := range tokens {
			if err != nil {
				yield(Statement{LineNo: tok.LineNo}, err)
				return
			}

			switch state {
			case stateHead:
				switch tok.Class {
				case TOKEN_EOL:
					continue
				case TOKEN_MNEMONIC, TOKEN_IDENTIFIER:
					stmt = Statement{LineNo: tok.LineNo, Mnemonic: tok.Text, Words: []string{tok.Text}}
					state = stateFirst
				default:
					fail(tok, ErrStatement)
					return
				}
			case stateFirst, stateParameter:
				switch {
				case tok.Class.Parameter():
					stmt.Parameters = append(stmt.Parameters, tok.Value)
					stmt.Words = append(stmt.Words, tok.Text)
					state = stateSeparator
				case tok.Class == TOKEN_EOL && state == stateFirst:
					if !yield(stmt, nil) {
						return
					}
					state = stateHead
				default:
					fail(tok, ErrParameter)
					return
				}
			case stateSeparator:
				switch tok.Class {
				case TOKEN_COMMA:
					state = stateParameter
				case TOKEN_EOL:
					if !yield(stmt, nil) {
						return
					}
					state = stateHead
				default:
					fail(tok, ErrSeparator)
					return
				}
			}
		}
	}
}
