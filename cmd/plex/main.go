package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/portugol-lang/portulex/config"
	perrors "github.com/portugol-lang/portulex/pkg/portugol/errors"
	"github.com/portugol-lang/portulex/pkg/portugol/lexer"
	"github.com/portugol-lang/portulex/pkg/portugol/repl"
	"github.com/portugol-lang/portulex/pkg/symstore"
)

// Version is set at compile time via -ldflags
var Version = "0.3.0"

var (
	// Display flags
	helpFlag        = flag.Bool("h", false, "Show help message")
	helpLongFlag    = flag.Bool("help", false, "Show help message")
	versionFlag     = flag.Bool("V", false, "Show version information")
	versionLongFlag = flag.Bool("version", false, "Show version information")

	// Tokenization flags
	evalFlag     = flag.String("e", "", "Tokenize code string")
	evalLongFlag = flag.String("eval", "", "Tokenize code string")
	jsonFlag     = flag.Bool("json", false, "Print tokens as JSON")
	symbolsFlag  = flag.Bool("symbols", false, "Print the symbol table after scanning")

	// Lexer option overrides
	keepCommentsFlag = flag.Bool("keep-comments", false, "Surface // comments as tokens")
	noWhitespaceFlag = flag.Bool("no-whitespace", false, "Drop whitespace/newline tokens")
	noSymbolsFlag    = flag.Bool("no-symbols", false, "Do not record identifiers")

	// Tool flags
	configFlag = flag.String("config", "", "Path to YAML config file")
	dbFlag     = flag.String("db", "", "Export identifier occurrences to a SQLite file")
	watchFlag  = flag.Bool("watch", false, "Re-tokenize files whenever they change")
)

func main() {
	flag.Usage = printHelp
	flag.Parse()

	if *helpFlag || *helpLongFlag {
		printHelp()
		os.Exit(0)
	}

	if *versionFlag || *versionLongFlag {
		fmt.Printf("plex version %s\n", Version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag, os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	applyFlagOverrides(cfg)

	// Get eval code (prefer -e over --eval if both set)
	evalCode := *evalFlag
	if evalCode == "" {
		evalCode = *evalLongFlag
	}

	// Mode dispatch
	switch {
	case evalCode != "":
		if err := tokenizeSource("<eval>", evalCode, cfg, lexer.NewSymbolTable()); err != nil {
			os.Exit(1)
		}
	case *watchFlag:
		files := flag.Args()
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --watch requires at least one file")
			os.Exit(2)
		}
		if err := watchFiles(files, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case len(flag.Args()) > 0:
		os.Exit(tokenizeFiles(flag.Args(), cfg))
	default:
		repl.Start(os.Stdin, os.Stdout, Version)
	}
}

func printHelp() {
	fmt.Printf(`plex - Portugol tokenizer version %s

Usage:
  plex [options] [file...]
  plex -e "code"
  plex --watch <file>...

Display Options:
  -h, --help            Show this help message
  -V, --version         Show version information

Tokenization Options:
  -e, --eval <code>     Tokenize a code string
  --json                Print tokens as JSON
  --symbols             Print the symbol table after scanning
  --keep-comments       Surface // comments as tokens
  --no-whitespace       Drop whitespace and newline tokens
  --no-symbols          Do not record identifiers

Tool Options:
  --config <file>       Load options from a YAML config file
  --db <file>           Export identifier occurrences to a SQLite file
  --watch               Re-tokenize files whenever they change

Examples:
  plex                          Start interactive REPL
  plex programa.por             Tokenize a source file
  plex -e "saida <- n1 / n2"    Tokenize inline code
  plex --json programa.por      JSON token dump for tooling
  plex --symbols *.por          Tokenize and list identifiers
  plex --db simbolos.db *.por   Persist identifier occurrences
  plex --watch programa.por     Re-tokenize on every save
`, Version)
}

// applyFlagOverrides folds command-line lexer switches into the config.
func applyFlagOverrides(cfg *config.Config) {
	if *keepCommentsFlag {
		cfg.Lexer.SkipComments = false
	}
	if *noWhitespaceFlag {
		cfg.Lexer.EmitWhitespace = false
	}
	if *noSymbolsFlag {
		cfg.Lexer.TrackSymbols = false
	}
	if *jsonFlag {
		cfg.Output.Format = "json"
	}
	if *symbolsFlag {
		cfg.Symbols.Print = true
	}
	if *dbFlag != "" {
		cfg.Symbols.DB = *dbFlag
	}
}

func lexerOptions(cfg *config.Config) lexer.Options {
	return lexer.Options{
		SkipComments:   cfg.Lexer.SkipComments,
		EmitWhitespace: cfg.Lexer.EmitWhitespace,
		TrackSymbols:   cfg.Lexer.TrackSymbols,
	}
}

// tokenizeFiles scans each file with a shared symbol table, so identifiers
// accumulate across the whole set. Returns the process exit code.
func tokenizeFiles(files []string, cfg *config.Config) int {
	table := lexer.NewSymbolTable()
	exitCode := 0

	for _, filename := range files {
		content, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", filename, err)
			return 2
		}

		if err := tokenizeSource(filename, string(content), cfg, table); err != nil {
			exitCode = 1
		}
	}

	return exitCode
}

// tokenJSON is the wire shape of a token in --json mode.
type tokenJSON struct {
	Category string `json:"category"`
	Literal  string `json:"literal"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// tokenizeSource scans one input and prints its tokens. The symbol table is
// shared across calls so multi-file runs accumulate identifiers.
func tokenizeSource(filename, source string, cfg *config.Config, table *lexer.SymbolTable) error {
	s := lexer.NewWithOptions(source, lexerOptions(cfg), table)

	tokens, err := s.All(context.Background())
	if err != nil {
		printLexError(filename, source, err)
		return err
	}

	if cfg.Output.Format == "json" {
		out := make([]tokenJSON, len(tokens))
		for i, tok := range tokens {
			out[i] = tokenJSON{
				Category: tok.Category.String(),
				Literal:  tok.Literal,
				Line:     tok.Line,
				Column:   tok.Column,
			}
		}
		data, jerr := json.MarshalIndent(out, "", "  ")
		if jerr != nil {
			fmt.Fprintf(os.Stderr, "Error encoding tokens: %v\n", jerr)
			return jerr
		}
		fmt.Println(string(data))
	} else {
		for _, tok := range tokens {
			fmt.Println(tok)
		}
	}

	if cfg.Symbols.Print {
		printSymbolTable(table)
	}

	if cfg.Symbols.DB != "" {
		if err := exportSymbols(cfg.Symbols.DB, filename, table); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting symbols: %v\n", err)
			return err
		}
	}

	return nil
}

// printSymbolTable lists identifiers in first-seen order with their positions.
func printSymbolTable(table *lexer.SymbolTable) {
	names := table.Names()
	if len(names) == 0 {
		fmt.Println("(no identifiers)")
		return
	}

	fmt.Println("Symbols:")
	for _, name := range names {
		occ := table.Occurrences(name)
		positions := make([]string, len(occ))
		for i, tok := range occ {
			positions[i] = fmt.Sprintf("%d:%d", tok.Line, tok.Column)
		}
		fmt.Printf("  %s (%d): %s\n", name, len(occ), strings.Join(positions, ", "))
	}
}

// exportSymbols writes the table's occurrences for one source to SQLite.
func exportSymbols(dbPath, source string, table *lexer.SymbolTable) error {
	store, err := symstore.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Save(source, table)
}

// watchFiles tokenizes each file once, then re-tokenizes whenever a watched
// file is written. Every pass is a full scan with a fresh symbol table; this
// is re-running, not incremental re-lexing.
func watchFiles(files []string, cfg *config.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("invalid path %s: %w", f, err)
		}
		watched[abs] = true
		// Watch the directory: editors often replace files on save,
		// which drops a watch registered on the file itself.
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", f, err)
		}
	}

	runPass := func(path string) {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			return
		}
		fmt.Printf("== %s ==\n", path)
		tokenizeSource(path, string(content), cfg, lexer.NewSymbolTable())
	}

	for path := range watched {
		runPass(path)
	}
	fmt.Println("Watching for changes (Ctrl+C to stop)...")

	// Debounce duration - wait for rapid changes to settle
	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	var lastChange time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if time.Since(lastChange) < debounce {
				continue
			}
			lastChange = time.Now()
			runPass(abs)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watcher error: %v\n", err)
		}
	}
}

// printLexError prints a lexical error with the offending source line and a
// caret under the failure column.
func printLexError(filename, source string, err error) {
	lexErr, ok := err.(*perrors.LexError)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
		return
	}

	fmt.Fprintf(os.Stderr, "%s: %s\n", filename, lexErr.PrettyString())

	// Positions refer to the normalized text, so derive context from it.
	lines := strings.Split(lexer.Normalize(source), "\n")
	printSourceContext(lines, lexErr.Line, lexErr.Column)
}

// printSourceContext prints the source line and error pointer. lineNum is
// 0-based; colNum is a line-relative rune offset.
func printSourceContext(lines []string, lineNum, colNum int) {
	if lineNum < 0 || lineNum >= len(lines) {
		return
	}

	sourceLine := lines[lineNum]

	// Count leading whitespace so the caret survives the trim below.
	trimCount := 0
	for _, r := range sourceLine {
		if r != ' ' && r != '\t' {
			break
		}
		trimCount++
	}

	trimmedLine := strings.TrimLeft(sourceLine, " \t")
	fmt.Fprintf(os.Stderr, "    %s\n", trimmedLine)

	adjustedCol := max(colNum-trimCount, 0)
	pointer := strings.Repeat(" ", adjustedCol) + "^"
	fmt.Fprintf(os.Stderr, "    %s\n", pointer)
}
