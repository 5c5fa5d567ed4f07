// Package errors provides structured error types for the Portugol lexer.
//
// This package defines LexError, the single terminal error a scan can
// produce, with enough metadata (offending character, absolute position,
// input length, snippet) for display and programmatic handling.
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// ErrorClass categorizes errors for filtering and templating.
type ErrorClass string

const (
	ClassLex    ErrorClass = "lex"    // Unscannable input
	ClassConfig ErrorClass = "config" // Tool configuration problems
	ClassIO     ErrorClass = "io"     // File operations around the scanner
)

// LexError represents a failure to fully consume an input.
//
// A scan is fail-fast and single-shot: there is no resynchronization once
// the pattern table cannot make progress. Tokens already produced before
// the failure point stay valid, and any symbol table the scan was feeding
// keeps its partial updates.
type LexError struct {
	Class   ErrorClass `json:"class"`             // Error category
	Code    string     `json:"code"`              // Error code (e.g., "LEX-0001")
	Message string     `json:"message"`           // Human-readable message
	Char    string     `json:"char,omitempty"`    // Offending character
	Pos     int        `json:"pos"`               // Absolute rune offset in the normalized text
	Length  int        `json:"length"`            // Total length of the normalized text, in runes
	Line    int        `json:"line"`              // 0-based line of the failure
	Column  int        `json:"column"`            // Line-relative rune column of the failure
	Snippet string     `json:"snippet,omitempty"` // Fragment of the text under scan
}

// Error implements the error interface.
func (e *LexError) Error() string {
	return e.String()
}

// String returns a formatted string representation of the error.
func (e *LexError) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("line %d, column %d: ", e.Line, e.Column))
	sb.WriteString(e.Message)

	return sb.String()
}

// PrettyString returns a multi-line formatted string for display.
func (e *LexError) PrettyString() string {
	var sb strings.Builder

	sb.WriteString("Lexical error")
	sb.WriteString(fmt.Sprintf(": line %d, column %d\n  ", e.Line, e.Column))
	sb.WriteString(e.Message)
	if e.Snippet != "" {
		sb.WriteString("\n  in: ")
		sb.WriteString(truncate(e.Snippet, 60))
	}

	return sb.String()
}

// ToJSON returns the error as JSON bytes.
func (e *LexError) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ErrorDef defines an error in the catalog.
type ErrorDef struct {
	Class    ErrorClass // Error category
	Template string     // Message template with {{.placeholders}}
}

// ErrorCatalog maps error codes to their definitions.
var ErrorCatalog = map[string]ErrorDef{
	"LEX-0001": {
		Class:    ClassLex,
		Template: "cannot scan character '{{.Char}}' at position {{.Pos}}/{{.Length}}",
	},
	"LEX-0002": {
		Class:    ClassLex,
		Template: "input not fully consumed: stopped at position {{.Pos}}/{{.Length}}",
	},
}

// New creates a LexError from the catalog.
// If the code is not found, creates a generic error with the code as message.
func New(code string, data map[string]any) *LexError {
	def, ok := ErrorCatalog[code]
	if !ok {
		msg := code
		if data != nil {
			if m, ok := data["message"].(string); ok {
				msg = m
			}
		}
		return &LexError{
			Class:   ClassLex,
			Code:    code,
			Message: msg,
		}
	}

	return &LexError{
		Class:   def.Class,
		Code:    code,
		Message: renderTemplate(def.Template, data),
	}
}

// NewUnscannable creates the LEX-0001 error for a character the pattern
// table could not consume. pos and length are rune offsets in the
// normalized text; line and column locate the character for display.
func NewUnscannable(char rune, pos, length, line, column int, snippet string) *LexError {
	err := New("LEX-0001", map[string]any{
		"Char":   string(char),
		"Pos":    pos,
		"Length": length,
	})
	err.Char = string(char)
	err.Pos = pos
	err.Length = length
	err.Line = line
	err.Column = column
	err.Snippet = snippet
	return err
}

// renderTemplate renders a Go template with the given data.
func renderTemplate(tmplStr string, data map[string]any) string {
	if data == nil {
		return tmplStr
	}

	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return tmplStr
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return tmplStr
	}

	return buf.String()
}

// truncate returns the first n characters of a string, adding "..." if truncated.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
