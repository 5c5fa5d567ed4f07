// Package config holds the tool configuration for the Portugol tokenizer.
package config

// Config represents the complete tool configuration
type Config struct {
	Lexer   LexerConfig   `yaml:"lexer"`
	Output  OutputConfig  `yaml:"output"`
	Symbols SymbolsConfig `yaml:"symbols"`
	Watch   WatchConfig   `yaml:"watch"`
}

// LexerConfig selects which matches surface as tokens
type LexerConfig struct {
	SkipComments   bool `yaml:"skip_comments"`   // drop // comments without emitting tokens
	EmitWhitespace bool `yaml:"emit_whitespace"` // surface whitespace/newline tokens
	TrackSymbols   bool `yaml:"track_symbols"`   // record identifier occurrences
}

// OutputConfig controls how tokens are printed
type OutputConfig struct {
	Format string `yaml:"format"` // "text" or "json"
}

// SymbolsConfig controls symbol table reporting and persistence
type SymbolsConfig struct {
	Print bool   `yaml:"print"` // print the symbol table after each scan
	DB    string `yaml:"db"`    // SQLite file to export occurrences to ("" = off)
}

// WatchConfig controls the file watching mode
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms"` // delay before re-scanning after a change
}

// Defaults returns the configuration matching the classic analyzer:
// comments dropped, whitespace surfaced, symbol table on, text output.
func Defaults() *Config {
	return &Config{
		Lexer: LexerConfig{
			SkipComments:   true,
			EmitWhitespace: true,
			TrackSymbols:   true,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Watch: WatchConfig{
			DebounceMs: 100,
		},
	}
}
