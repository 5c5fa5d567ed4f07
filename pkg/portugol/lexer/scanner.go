package lexer

import (
	"context"
	"unicode/utf8"

	"github.com/portugol-lang/portulex/pkg/portugol/errors"
)

// Options control which matches surface as tokens and whether identifier
// occurrences are recorded. The defaults reproduce the classic analyzer:
// comments are dropped, whitespace and newline tokens are emitted, and the
// symbol table is populated.
type Options struct {
	SkipComments   bool // discard // comments without emitting a token
	EmitWhitespace bool // emit whitespace/newline tokens (line counting happens either way)
	TrackSymbols   bool // record non-reserved identifier occurrences
}

// DefaultOptions returns the original behavior set.
func DefaultOptions() Options {
	return Options{SkipComments: true, EmitWhitespace: true, TrackSymbols: true}
}

// Scanner drives repeated first-rule-wins matching over normalized source
// text, producing one token per NextToken call. A Scanner owns its cursor
// exclusively; it is not safe for concurrent use.
type Scanner struct {
	input     string // normalized text; all matching happens against this
	length    int    // total length of input, in runes
	pos       int    // byte offset of the cursor
	runePos   int    // rune offset of the cursor
	line      int    // newline tokens seen so far; first line is 0
	lineStart int    // rune offset just after the last newline token
	opts      Options
	symbols   *SymbolTable
}

// New creates a scanner with default options and a fresh symbol table.
// The input is normalized once, up front.
func New(input string) *Scanner {
	return NewWithOptions(input, DefaultOptions(), NewSymbolTable())
}

// NewWithOptions creates a scanner with explicit options and symbol table.
// Passing the same table to successive scanners accumulates identifiers
// across inputs; pass nil to get a fresh table.
func NewWithOptions(input string, opts Options, table *SymbolTable) *Scanner {
	if table == nil {
		table = NewSymbolTable()
	}
	normalized := Normalize(input)
	return &Scanner{
		input:   normalized,
		length:  utf8.RuneCountInString(normalized),
		opts:    opts,
		symbols: table,
	}
}

// Symbols returns the symbol table the scanner records into.
func (s *Scanner) Symbols() *SymbolTable {
	return s.symbols
}

// NextToken scans the input and returns the next token. At end of input it
// returns an EOF token; after that every call keeps returning EOF. A
// non-nil error means the pattern table could not consume the remaining
// input, which is unreachable while the catch-all rule is in the table.
func (s *Scanner) NextToken() (Token, error) {
	for {
		if s.pos >= len(s.input) {
			return Token{Category: EOF, Line: s.line, Column: s.runePos}, nil
		}

		cat, n, ok := matchTable(s.input[s.pos:])
		if !ok {
			// Only reachable if the table loses its catch-all rule.
			r, _ := utf8.DecodeRuneInString(s.input[s.pos:])
			return Token{}, errors.NewUnscannable(
				r, s.runePos, s.length, s.line, s.runePos-s.lineStart, s.input)
		}

		literal := s.input[s.pos : s.pos+n]
		s.pos += n
		s.runePos += utf8.RuneCountInString(literal)

		if cat == COMMENT && s.opts.SkipComments {
			continue
		}
		if cat == NEWLINE {
			s.line++
			s.lineStart = s.runePos
		}
		if (cat == NEWLINE || cat == WHITESPACE) && !s.opts.EmitWhitespace {
			continue
		}

		tok := Token{Category: cat, Literal: literal, Line: s.line, Column: s.runePos}

		if cat == IDENTIFIER && s.opts.TrackSymbols && !IsReserved(literal) {
			s.symbols.Record(tok)
		}

		return tok, nil
	}
}

// All runs the scan to completion and returns every surfaced token, EOF
// excluded. Cancellation is observed between tokens; on cancellation or a
// scan error the tokens produced so far are returned alongside the error.
func (s *Scanner) All(ctx context.Context) ([]Token, error) {
	var tokens []Token
	for {
		if err := ctx.Err(); err != nil {
			return tokens, err
		}
		tok, err := s.NextToken()
		if err != nil {
			return tokens, err
		}
		if tok.Category == EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
