package token

import "testing"

func TestKeywordClassification(t *testing.T) {
	tests := []struct {
		text       string
		predefined bool
		contextual bool
	}{
		{"int", true, false},
		{"decimal", true, false},
		{"class", false, false},
		{"var", false, true},
		{"where", false, true},
	}
	for _, tt := range tests {
		k, ok := LookupKeyword(tt.text)
		if !ok {
			t.Fatalf("%q is not a keyword", tt.text)
		}
		if !k.IsKeyword() {
			t.Fatalf("%q: IsKeyword = false", tt.text)
		}
		if k.IsPredefinedType() != tt.predefined {
			t.Fatalf("%q: IsPredefinedType = %v", tt.text, k.IsPredefinedType())
		}
		if k.IsContextual() != tt.contextual {
			t.Fatalf("%q: IsContextual = %v", tt.text, k.IsContextual())
		}
		if k.String() != tt.text {
			t.Fatalf("String() = %q, want %q", k.String(), tt.text)
		}
	}
	if _, ok := LookupKeyword("Program"); ok {
		t.Fatalf("Program must not be a keyword")
	}
	if Arrow.String() != "=>" {
		t.Fatalf("Arrow.String() = %q", Arrow.String())
	}
}
