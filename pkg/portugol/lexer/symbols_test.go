package lexer

import "testing"

func TestSymbolTableRecord(t *testing.T) {
	st := NewSymbolTable()

	st.Record(Token{Category: IDENTIFIER, Literal: "saida", Line: 0, Column: 5})
	st.Record(Token{Category: IDENTIFIER, Literal: "n1", Line: 0, Column: 11})
	st.Record(Token{Category: IDENTIFIER, Literal: "saida", Line: 1, Column: 20})

	if st.Len() != 2 {
		t.Fatalf("expected 2 distinct identifiers, got %d", st.Len())
	}

	occ := st.Occurrences("saida")
	if len(occ) != 2 {
		t.Fatalf("expected 2 occurrences of saida, got %d", len(occ))
	}
	if occ[0].Column != 5 || occ[1].Column != 20 {
		t.Errorf("occurrences out of scan order: %v", occ)
	}

	if st.Has("n2") {
		t.Error("Has reported an identifier that was never recorded")
	}
	if st.Occurrences("n2") != nil {
		t.Error("Occurrences for an unknown identifier should be nil")
	}
}

func TestSymbolTableNamesInsertionOrder(t *testing.T) {
	st := NewSymbolTable()

	for _, name := range []string{"gamma", "alpha", "beta", "alpha"} {
		st.Record(Token{Category: IDENTIFIER, Literal: name})
	}

	want := []string{"gamma", "alpha", "beta"}
	got := st.Names()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names not in first-seen order: expected %v, got %v", want, got)
		}
	}

	// Names returns a copy; mutating it must not corrupt the table.
	got[0] = "mutated"
	if st.Names()[0] != "gamma" {
		t.Error("Names returned a slice aliasing internal state")
	}
}
