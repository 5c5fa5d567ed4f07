package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// A pattern pairs a token category with a prefix-anchored matcher. The
// matcher reports how many bytes of s it consumes, or 0 for no match.
type pattern struct {
	category Category
	match    func(s string) int
}

// patternTable is tried in order at each scan position: the first rule that
// consumes a non-empty prefix wins, even if a later rule would consume more.
// The ordering therefore carries meaning. Two-character operators ("<-",
// "..", "<=", ">=", "<>") must come before their one-character prefixes
// ("<", ".", ">") or the single-character rule would split them in two. The
// single-rune desconhecido rule sits last as a catch-all so the scanner
// always makes progress.
var patternTable = []pattern{
	{IDENTIFIER, matchIdentifier},
	{NEWLINE, matchExact("\n")},
	{COMMENT, matchComment},
	{STRING, matchString},
	{WHITESPACE, matchWhitespace},
	{INTEIRO, matchInteger},
	{ATRIBUICAO, matchExact("<-")},
	{PONTOPONTO, matchExact("..")},
	{PONTO, matchExact(".")},
	{DOISPONTOS, matchExact(":")},
	{PONTOVIRGULA, matchExact(";")},
	{VIRGULA, matchExact(",")},
	{COLCHETE_ESQ, matchExact("[")},
	{COLCHETE_DIR, matchExact("]")},
	{PARENTESE_ESQ, matchExact("(")},
	{PARENTESE_DIR, matchExact(")")},
	{IGUAL, matchExact("=")},
	{MENOR_IGUAL, matchExact("<=")},
	{MAIOR_IGUAL, matchExact(">=")},
	{DIFERENTE, matchExact("<>")},
	{MAIOR_QUE, matchExact(">")},
	{MENOR_QUE, matchExact("<")},
	{DIVISAO, matchExact("/")},
	{MENOS, matchExact("-")},
	{MUL, matchExact("*")},
	{SOMA, matchExact("+")},
	{DESCONHECIDO, matchAnyRune},
}

// matchTable walks the table at the start of s and returns the winning
// category and consumed length. ok is false only when no rule matches,
// which cannot happen while the catch-all rule is present.
func matchTable(s string) (Category, int, bool) {
	for _, p := range patternTable {
		if n := p.match(s); n > 0 {
			return p.category, n, true
		}
	}
	return DESCONHECIDO, 0, false
}

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || b == '_'
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// matchIdentifier matches [a-z_][a-z0-9_]*. Input is already normalized, so
// uppercase letters never reach the scanner.
func matchIdentifier(s string) int {
	if !isIdentStart(s[0]) {
		return 0
	}
	n := 1
	for n < len(s) && isIdentPart(s[n]) {
		n++
	}
	return n
}

// matchComment matches "//" up to, but not including, the end of the line.
func matchComment(s string) int {
	if !strings.HasPrefix(s, "//") {
		return 0
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return i
	}
	return len(s)
}

// matchString matches a non-greedy double-quoted string with no escape
// handling. The closing quote must appear before the end of the line;
// otherwise there is no match and the lone quote falls through to the
// catch-all rule.
func matchString(s string) int {
	if s[0] != '"' {
		return 0
	}
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '"':
			return i + 1
		case '\n':
			return 0
		}
	}
	return 0
}

// matchWhitespace matches a maximal run of Unicode whitespace. A run that
// starts with a regular space can swallow embedded newlines; those never
// reach the newline rule and so never advance the line counter.
func matchWhitespace(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !unicode.IsSpace(r) {
			break
		}
		n += size
	}
	return n
}

func matchInteger(s string) int {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	return n
}

func matchExact(lit string) func(string) int {
	return func(s string) int {
		if strings.HasPrefix(s, lit) {
			return len(lit)
		}
		return 0
	}
}

// matchAnyRune consumes exactly one rune. It exists to surface invalid
// input as desconhecido tokens instead of stalling the scanner.
func matchAnyRune(s string) int {
	_, size := utf8.DecodeRuneInString(s)
	return size
}
