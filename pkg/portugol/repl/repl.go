// Package repl provides an interactive tokenizer session for Portugol
// source lines.
package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/portugol-lang/portulex/pkg/portugol/errors"
	"github.com/portugol-lang/portulex/pkg/portugol/lexer"
)

const PROMPT = ">> "
const PROMPT_JSON = "j> "

const LOGO = `
█▀█ █▀█ █▀█ ▀█▀ █░█ █▀▀ █▀█ █░░
█▀▀ █▄█ █▀▄ ░█░ █▄█ █▄█ █▄█ █▄▄ `

// Reserved words plus REPL commands for tab completion
var completionWords = append(lexer.ReservedWords(),
	":help", ":simbolos", ":limpar", ":json", "exit", "quit",
)

// Start runs the REPL with line editing, history, and tab completion.
// Every line is tokenized on its own, but the symbol table accumulates
// across the whole session.
func Start(in io.Reader, out io.Writer, version string) {
	line := liner.NewLiner()
	defer line.Close()

	// Enable Ctrl+C to abort current line
	line.SetCtrlCAborts(true)

	sort.Strings(completionWords)
	line.SetCompleter(func(line string) []string {
		return filterCompletions(line)
	})

	// Load command history from file
	historyFile := filepath.Join(os.TempDir(), ".portulex_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	// Save history on exit
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	symbols := lexer.NewSymbolTable()
	jsonMode := false

	fmt.Fprintf(out, "%s", LOGO)
	fmt.Fprintln(out, "v", version)
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit")
	fmt.Fprintln(out, "Use Tab for completion, ↑↓ for history")
	fmt.Fprintln(out, "Type ':help' for REPL commands")
	fmt.Fprintln(out, "")

	for {
		prompt := PROMPT
		if jsonMode {
			prompt = PROMPT_JSON
		}
		input, err := line.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Fprintln(out, "^C")
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out, "\nTchau!")
				return
			}
			fmt.Fprintf(out, "Error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "exit" || trimmed == "quit" {
			fmt.Fprintln(out, "Tchau!")
			return
		}

		// Handle REPL commands (start with :)
		if strings.HasPrefix(trimmed, ":") {
			// :limpar swaps the table itself, so it is handled here
			if trimmed == ":limpar" {
				symbols = lexer.NewSymbolTable()
				fmt.Fprintln(out, "Symbol table cleared")
				continue
			}
			jsonMode, _ = handleReplCommand(trimmed, symbols, out, jsonMode)
			continue
		}

		if trimmed == "" {
			continue
		}

		line.AppendHistory(input)

		s := lexer.NewWithOptions(input, lexer.DefaultOptions(), symbols)
		tokens, err := s.All(context.Background())
		if err != nil {
			printLexError(out, err)
			continue
		}

		for _, tok := range tokens {
			if jsonMode {
				fmt.Fprintf(out, "{\"category\": %q, \"literal\": %q, \"line\": %d, \"column\": %d}\n",
					tok.Category, tok.Literal, tok.Line, tok.Column)
			} else {
				fmt.Fprintln(out, tok)
			}
		}
	}
}

// handleReplCommand handles REPL meta-commands that start with ':'
// Returns (newJSONMode, handled) - if handled is true, the command was recognized
func handleReplCommand(cmd string, symbols *lexer.SymbolTable, out io.Writer, jsonMode bool) (bool, bool) {
	switch cmd {
	case ":help", ":h", ":?":
		fmt.Fprintln(out, "REPL Commands:")
		fmt.Fprintln(out, "  :help, :h, :?   Show this help")
		fmt.Fprintln(out, "  :simbolos       Show the session symbol table")
		fmt.Fprintln(out, "  :limpar         Clear the session symbol table")
		fmt.Fprintln(out, "  :json           Toggle JSON token output")
		fmt.Fprintln(out, "  exit, quit      Exit the REPL")
		return jsonMode, true

	case ":simbolos":
		printSymbols(symbols, out)
		return jsonMode, true

	case ":json":
		newMode := !jsonMode
		if newMode {
			fmt.Fprintln(out, "JSON output ON")
		} else {
			fmt.Fprintln(out, "JSON output OFF")
		}
		return newMode, true

	default:
		fmt.Fprintf(out, "Unknown command: %s (type :help for commands)\n", cmd)
		return jsonMode, true
	}
}

// printSymbols displays every identifier recorded this session, with its
// occurrence positions in first-seen order.
func printSymbols(symbols *lexer.SymbolTable, out io.Writer) {
	names := symbols.Names()
	if len(names) == 0 {
		fmt.Fprintln(out, "(no identifiers)")
		return
	}

	for _, name := range names {
		occ := symbols.Occurrences(name)
		positions := make([]string, len(occ))
		for i, tok := range occ {
			positions[i] = fmt.Sprintf("%d:%d", tok.Line, tok.Column)
		}
		fmt.Fprintf(out, "  %s (%d): %s\n", name, len(occ), strings.Join(positions, ", "))
	}
}

// filterCompletions returns completion suggestions based on current input
func filterCompletions(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	// Don't complete if line ends with whitespace (including tabs from pasting)
	if line[len(line)-1] == ' ' || line[len(line)-1] == '\t' {
		return nil
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}

	lastWord := words[len(words)-1]

	var matches []string
	for _, word := range completionWords {
		if strings.HasPrefix(word, lastWord) {
			matches = append(matches, word)
		}
	}
	return matches
}

// printLexError prints a lexical error with structured formatting
func printLexError(out io.Writer, err error) {
	if lexErr, ok := err.(*errors.LexError); ok {
		io.WriteString(out, lexErr.PrettyString())
		io.WriteString(out, "\n")
		return
	}
	fmt.Fprintf(out, "Error: %v\n", err)
}
