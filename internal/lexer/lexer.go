// Package lexer splits configuration scalars into literal text and variable
// references.
//
// A reference is `$name` or `${name}` where name is one or more ASCII word
// characters ([A-Za-z0-9_]) and the `$` is not directly preceded by a
// backslash. Everything else is literal text. A literal may still carry
// escaped references (`\$name`); Unescape removes one backslash from each.
package lexer

import "strings"

// Kind identifies the token category.
type Kind int

const (
	// Literal is plain text, possibly containing escaped references.
	Literal Kind = iota
	// Variable is a complete, unescaped `$name` or `${name}` reference.
	Variable
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Variable:
		return "variable"
	default:
		return "unknown"
	}
}

// Token is one segment of a scalar. Text is the exact source text; Name is
// only set for Variable tokens.
type Token struct {
	Kind Kind
	Text string
	Name string
}

// Split tokenizes value in source order. Empty segments are never emitted,
// so an empty input yields no tokens.
func Split(value string) []Token {
	var tokens []Token
	start := 0
	for i := 0; i < len(value); {
		if value[i] != '$' || escaped(value, i) {
			i++
			continue
		}
		name, end, ok := matchReference(value, i)
		if !ok {
			i++
			continue
		}
		if i > start {
			tokens = append(tokens, Token{Kind: Literal, Text: value[start:i]})
		}
		tokens = append(tokens, Token{Kind: Variable, Text: value[i:end], Name: name})
		start = end
		i = end
	}
	if start < len(value) {
		tokens = append(tokens, Token{Kind: Literal, Text: value[start:]})
	}
	return tokens
}

// Unescape drops exactly one backslash in front of every reference in text:
// `\$foo` becomes `$foo` and `\\${foo}` becomes `\${foo}`. Text without an
// escaped reference is returned unchanged.
func Unescape(text string) string {
	if !strings.Contains(text, `\$`) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for i := 1; i < len(text); {
		if text[i] != '$' || text[i-1] != '\\' {
			i++
			continue
		}
		_, end, ok := matchReference(text, i)
		if !ok {
			i++
			continue
		}
		b.WriteString(text[last : i-1])
		b.WriteString(text[i:end])
		last = end
		i = end
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

func escaped(value string, i int) bool {
	return i > 0 && value[i-1] == '\\'
}

// matchReference matches `{name}` or `name` right after the `$` at index i.
// The braced form is tried first; `{` is not a word character so a failed
// braced match can never fall back to the bare form.
func matchReference(value string, i int) (name string, end int, ok bool) {
	j := i + 1
	if j < len(value) && value[j] == '{' {
		k := scanWord(value, j+1)
		if k == j+1 || k >= len(value) || value[k] != '}' {
			return "", 0, false
		}
		return value[j+1 : k], k + 1, true
	}
	k := scanWord(value, j)
	if k == j {
		return "", 0, false
	}
	return value[j:k], k, true
}

func scanWord(value string, from int) int {
	k := from
	for k < len(value) && isWord(value[k]) {
		k++
	}
	return k
}

func isWord(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
