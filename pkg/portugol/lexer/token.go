package lexer

import "fmt"

// Category classifies a lexical token
type Category int

const (
	// Special tokens
	EOF Category = iota
	DESCONHECIDO

	// Identifiers and literals
	IDENTIFIER // soma, n1, saida, ...
	INTEIRO    // 42
	STRING     // "texto"

	// Layout
	NEWLINE    // \n
	COMMENT    // // until end of line
	WHITESPACE // run of spaces/tabs (may include embedded newlines)

	// Operators
	ATRIBUICAO  // <-
	PONTOPONTO  // ..
	IGUAL       // =
	MENOR_IGUAL // <=
	MAIOR_IGUAL // >=
	DIFERENTE   // <>
	MAIOR_QUE   // >
	MENOR_QUE   // <
	DIVISAO     // /
	MENOS       // -
	MUL         // *
	SOMA        // +

	// Delimiters
	PONTO         // .
	DOISPONTOS    // :
	PONTOVIRGULA  // ;
	VIRGULA       // ,
	COLCHETE_ESQ  // [
	COLCHETE_DIR  // ]
	PARENTESE_ESQ // (
	PARENTESE_DIR // )
)

// Token represents a single token of normalized Portugol source.
//
// Line counts newline tokens seen so far and therefore starts at 0 for the
// first line of input. Column is the absolute rune offset in the normalized
// text immediately after the match, not a line-relative column; both
// conventions come from the observable output of the classic analyzer and
// are kept on purpose.
type Token struct {
	Category Category
	Literal  string
	Line     int
	Column   int
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Category: %s, Literal: %q, Line: %d, Column: %d}",
		t.Category.String(), t.Literal, t.Line, t.Column)
}

// Reserved reports whether the token is an identifier spelling a reserved
// word. Reserved words keep the identifier category; they are only barred
// from the symbol table.
func (t Token) Reserved() bool {
	return t.Category == IDENTIFIER && IsReserved(t.Literal)
}

// String returns the category tag used in token dumps and JSON output
func (c Category) String() string {
	switch c {
	case EOF:
		return "eof"
	case DESCONHECIDO:
		return "desconhecido"
	case IDENTIFIER:
		return "identifier"
	case INTEIRO:
		return "inteiro"
	case STRING:
		return "string"
	case NEWLINE:
		return "newline"
	case COMMENT:
		return "comment"
	case WHITESPACE:
		return "whitespace"
	case ATRIBUICAO:
		return "atribuicao"
	case PONTOPONTO:
		return "pontoponto"
	case IGUAL:
		return "igual"
	case MENOR_IGUAL:
		return "menor_igual"
	case MAIOR_IGUAL:
		return "maior_igual"
	case DIFERENTE:
		return "diferente"
	case MAIOR_QUE:
		return "maior_que"
	case MENOR_QUE:
		return "menor_que"
	case DIVISAO:
		return "divisao"
	case MENOS:
		return "menos"
	case MUL:
		return "mul"
	case SOMA:
		return "soma"
	case PONTO:
		return "ponto"
	case DOISPONTOS:
		return "doispontos"
	case PONTOVIRGULA:
		return "pontovirgula"
	case VIRGULA:
		return "virgula"
	case COLCHETE_ESQ:
		return "colchete_esq"
	case COLCHETE_DIR:
		return "colchete_dir"
	case PARENTESE_ESQ:
		return "parentese_esq"
	case PARENTESE_DIR:
		return "parentese_dir"
	default:
		return "unknown"
	}
}

// Reserved words of the language, already in normalized form
// (lowercase, accents stripped) so membership checks match scanner output.
var reservedWords = map[string]bool{
	"e":            true,
	"vetor":        true,
	"inicio":       true,
	"caso":         true,
	"const":        true,
	"div":          true,
	"faca":         true,
	"senao":        true,
	"fim":          true,
	"para":         true,
	"funcao":       true,
	"se":           true,
	"mod":          true,
	"nao":          true,
	"de":           true,
	"ou":           true,
	"procedimento": true,
	"algoritmo":    true,
	"registro":     true,
	"repita":       true,
	"entao":        true,
	"tipo":         true,
	"ate":          true,
	"var":          true,
	"enquanto":     true,
}

// IsReserved checks if an identifier is a reserved word of the language.
// The name must already be normalized; raw source should go through
// Normalize first.
func IsReserved(name string) bool {
	return reservedWords[name]
}

// ReservedWords returns the reserved word list in normalized form.
// Used by the REPL for tab completion.
func ReservedWords() []string {
	words := make([]string, 0, len(reservedWords))
	for w := range reservedWords {
		words = append(words, w)
	}
	return words
}
