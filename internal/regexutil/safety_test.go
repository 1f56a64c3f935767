package regexutil

import "testing"

func TestCheckSafety(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		safe    bool
	}{
		{"nested plus", "(a+)+", false},
		{"plain group repeat", "(abc)+", true},
		{"bounded repeat", "a{2,5}", true},
		{"open range inside repeated group", "(a{2,})+", false},
		{"bounded range on group", "(abc){2,5}", true},
		{"exact count inside repeated group", "(a{2})+", true},
		{"optional inside repeated group", "(a?)+", true},
		{"star inside starred group", "(ab*)*", false},
		{"non-capturing nested plus", "(?:a+)+", false},
		{"lookahead with inner repeat", "(?=a+)+", false},
		{"nested subgroup repeat", "((a+)b)+", false},
		{"alternation without repeats", "(foo|bar)+", true},
		{"class swallows quantifier chars", "([+*])+", true},
		{"escaped plus is inert", `(a\+)+`, true},
		{"escape inside class", `([\]+])+`, true},
		{"empty pattern", "", true},
		{"unbalanced parens left to compiler", "(a+", true},
		{"repeat after group not adjacent", "(a)b+", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			safe, reason := CheckSafety(tt.pattern)
			if safe != tt.safe {
				t.Errorf("CheckSafety(%q) safe = %v, want %v", tt.pattern, safe, tt.safe)
			}
			if !safe && reason != NestedQuantifierReason {
				t.Errorf("CheckSafety(%q) reason = %q, want %q", tt.pattern, reason, NestedQuantifierReason)
			}
			if safe && reason != "" {
				t.Errorf("CheckSafety(%q) returned reason %q for a safe pattern", tt.pattern, reason)
			}
		})
	}
}

func TestNeutralize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`a\+b`, "a_b"},
		{"[abc]+", "_+"},
		{"[^]]x", "_x"},
		{`[\]]`, "_"},
		{"(a|b)", "(a|b)"},
	}
	for _, tt := range tests {
		if got := neutralize(tt.in); got != tt.want {
			t.Errorf("neutralize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRepetitionAt(t *testing.T) {
	tests := []struct {
		s    string
		i    int
		want int
	}{
		{"a+", 1, 1},
		{"a*", 1, 1},
		{"a?", 1, 0},
		{"a{2}", 1, 0},
		{"a{2,}", 1, 4},
		{"a{2,5}", 1, 5},
		{"a{2", 1, 0},
		{"a", 1, 0},
	}
	for _, tt := range tests {
		if got := repetitionAt(tt.s, tt.i); got != tt.want {
			t.Errorf("repetitionAt(%q, %d) = %d, want %d", tt.s, tt.i, got, tt.want)
		}
	}
}
