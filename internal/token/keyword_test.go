package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  Kind
		ok    bool
	}{
		{"type", KwType, true},
		{"enum", KwEnum, true},
		{"keyof", KwKeyof, true},
		{"infer", KwInfer, true},
		{"readonly", KwReadonly, true},
		{"Type", Invalid, false}, // case-sensitive
		{"string", Invalid, false},
		{"never", Invalid, false},
		{"", Invalid, false},
	}

	for _, tt := range tests {
		got, ok := LookupKeyword(tt.ident)
		if ok != tt.ok {
			t.Errorf("LookupKeyword(%q) ok = %v, want %v", tt.ident, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
		}
	}
}

func TestTokenClassification(t *testing.T) {
	if !(Token{Kind: NumberLit}).IsLiteral() {
		t.Error("NumberLit should be a literal")
	}
	if !(Token{Kind: KwTrue}).IsLiteral() {
		t.Error("true should be a literal")
	}
	if !(Token{Kind: KwKeyof}).IsKeyword() {
		t.Error("keyof should be a keyword")
	}
	if !(Token{Kind: Subtype}).IsPunctOrOp() {
		t.Error("<: should be punct/op")
	}
	if (Token{Kind: Ident}).IsKeyword() {
		t.Error("Ident should not be a keyword")
	}
}
