// Package regexutil provides heuristic screening of user-supplied regular
// expressions for catastrophic-backtracking risk, plus a process-lifetime
// cache of compiled patterns.
package regexutil

import "strings"

// NestedQuantifierReason is the diagnostic attached to every unsafe verdict.
const NestedQuantifierReason = "nested quantifiers detected - potential catastrophic backtracking"

// placeholder stands in for character classes and escaped characters so
// that only structural regex tokens remain meaningful during the scan.
const placeholder = '_'

// CheckSafety screens a regular expression source for catastrophic
// backtracking risk. It flags any parenthesized group that is repeated
// (+, *, {m,} or {m,n}) and whose body contains another repeated atom.
// This is a heuristic, not a proof: false positives are acceptable since
// results are advisory only.
func CheckSafety(pattern string) (bool, string) {
	s := neutralize(pattern)
	for i := 0; i < len(s); i++ {
		if s[i] != '(' {
			continue
		}
		end := matchingParen(s, i)
		if end < 0 {
			// Unbalanced parens; the compiler will reject it anyway.
			break
		}
		if repetitionAt(s, end+1) == 0 {
			continue
		}
		if containsRepetition(stripGroupPrefix(s[i+1 : end])) {
			return false, NestedQuantifierReason
		}
	}
	return true, ""
}

// neutralize replaces character classes and escaped characters with an
// inert placeholder. Indices shift relative to the source, which is fine:
// the scan only ever looks at the neutralized form.
func neutralize(p string) string {
	var b strings.Builder
	b.Grow(len(p))
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '\\':
			b.WriteByte(placeholder)
			i++ // swallow the escaped character
		case '[':
			j := i + 1
			if j < len(p) && p[j] == '^' {
				j++
			}
			if j < len(p) && p[j] == ']' {
				// A ] in first position is a literal
				j++
			}
			for j < len(p) && p[j] != ']' {
				if p[j] == '\\' {
					j++
				}
				j++
			}
			b.WriteByte(placeholder)
			i = j
		default:
			b.WriteByte(p[i])
		}
	}
	return b.String()
}

// matchingParen returns the index of the ) closing the ( at open, or -1.
func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// repetitionAt returns the length of a repetition quantifier starting at
// i, or 0 if there is none. + and * repeat; so do open and bounded brace
// ranges ({m,} and {m,n}). A bare {m} and a lone ? do not repeat.
func repetitionAt(s string, i int) int {
	if i >= len(s) {
		return 0
	}
	switch s[i] {
	case '+', '*':
		return 1
	case '{':
		comma := false
		for j := i + 1; j < len(s); j++ {
			switch s[j] {
			case ',':
				comma = true
			case '}':
				if comma {
					return j - i + 1
				}
				return 0
			}
		}
	}
	return 0
}

// stripGroupPrefix removes a leading non-capturing or lookaround marker
// from a group body.
func stripGroupPrefix(body string) string {
	for _, prefix := range []string{"?:", "?=", "?!", "?<=", "?<!"} {
		if strings.HasPrefix(body, prefix) {
			return body[len(prefix):]
		}
	}
	return body
}

// containsRepetition reports whether the (neutralized) group body holds
// an atom carrying its own repetition quantifier, including inside
// nested subgroups.
func containsRepetition(body string) bool {
	for i := 1; i < len(body); i++ {
		if repetitionAt(body, i) == 0 {
			continue
		}
		switch body[i-1] {
		case '(', '|', '{':
			// Quantifier with no atom in front of it; not our problem.
			continue
		}
		return true
	}
	return false
}
