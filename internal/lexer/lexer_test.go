package lexer

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []Token
	}{
		{name: "empty", input: "", want: nil},
		{
			name:  "plain literal",
			input: "just text",
			want:  []Token{{Kind: Literal, Text: "just text"}},
		},
		{
			name:  "bare reference",
			input: "$foo",
			want:  []Token{{Kind: Variable, Text: "$foo", Name: "foo"}},
		},
		{
			name:  "braced reference",
			input: "${foo}",
			want:  []Token{{Kind: Variable, Text: "${foo}", Name: "foo"}},
		},
		{
			name:  "mixed",
			input: "prefix_${foo}_${bar}suffix",
			want: []Token{
				{Kind: Literal, Text: "prefix_"},
				{Kind: Variable, Text: "${foo}", Name: "foo"},
				{Kind: Literal, Text: "_"},
				{Kind: Variable, Text: "${bar}", Name: "bar"},
				{Kind: Literal, Text: "suffix"},
			},
		},
		{
			name:  "bare reference is greedy over word characters",
			input: "$foo_bar-baz",
			want: []Token{
				{Kind: Variable, Text: "$foo_bar", Name: "foo_bar"},
				{Kind: Literal, Text: "-baz"},
			},
		},
		{
			name:  "adjacent references",
			input: "$a$b",
			want: []Token{
				{Kind: Variable, Text: "$a", Name: "a"},
				{Kind: Variable, Text: "$b", Name: "b"},
			},
		},
		{
			name:  "escaped reference stays literal",
			input: `\$notavar`,
			want:  []Token{{Kind: Literal, Text: `\$notavar`}},
		},
		{
			name:  "unmatched brace",
			input: "${foo and more",
			want:  []Token{{Kind: Literal, Text: "${foo and more"}},
		},
		{
			name:  "empty braces",
			input: "${}",
			want:  []Token{{Kind: Literal, Text: "${}"}},
		},
		{
			name:  "lone dollar",
			input: "cost: 5$",
			want:  []Token{{Kind: Literal, Text: "cost: 5$"}},
		},
		{
			name:  "url",
			input: "http://${host}:5432",
			want: []Token{
				{Kind: Literal, Text: "http://"},
				{Kind: Variable, Text: "${host}", Name: "host"},
				{Kind: Literal, Text: ":5432"},
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Split(tc.input)
			if !reflect.DeepEqual(tc.want, got) {
				t.Fatalf("unexpected tokens\nwant: %#v\n got: %#v", tc.want, got)
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	cases := map[string]string{
		`plain`:               `plain`,
		`\$foo`:               `$foo`,
		`\${foo}`:             `${foo}`,
		`\\$foo`:              `\$foo`,
		`a \$x and \${y} end`: `a $x and ${y} end`,
		`\$`:                  `\$`,
		`\${unterminated`:     `\${unterminated`,
		`C:\path\$`:           `C:\path\$`,
	}
	for input, want := range cases {
		if got := Unescape(input); got != want {
			t.Fatalf("Unescape(%q): want %q got %q", input, want, got)
		}
	}
}
