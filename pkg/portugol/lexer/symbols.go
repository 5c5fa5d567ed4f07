package lexer

// SymbolTable maps user-defined identifier text to every token occurrence
// of that identifier, in scan order. Reserved words never become keys.
//
// The table is explicit state owned by the caller: create one per scan, or
// hand the same table to several scanners run one after another. It is not
// synchronized, so concurrent scans sharing a table need external locking.
type SymbolTable struct {
	entries map[string][]Token
	order   []string // keys in first-seen order
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: make(map[string][]Token)}
}

// Record inserts the identifier as a key if absent, then appends the token
// to its occurrence list. Every occurrence of a previously-seen identifier
// is recorded. The caller is responsible for filtering out reserved words.
func (st *SymbolTable) Record(tok Token) {
	name := tok.Literal
	if _, ok := st.entries[name]; !ok {
		st.entries[name] = nil
		st.order = append(st.order, name)
	}
	st.entries[name] = append(st.entries[name], tok)
}

// Has reports whether the identifier is a key in the table.
func (st *SymbolTable) Has(name string) bool {
	_, ok := st.entries[name]
	return ok
}

// Occurrences returns the recorded tokens for an identifier, in scan order.
// The returned slice is shared with the table; callers must not modify it.
func (st *SymbolTable) Occurrences(name string) []Token {
	return st.entries[name]
}

// Names returns the identifiers in first-seen order.
func (st *SymbolTable) Names() []string {
	names := make([]string, len(st.order))
	copy(names, st.order)
	return names
}

// Len returns the number of distinct identifiers recorded.
func (st *SymbolTable) Len() int {
	return len(st.order)
}
