package varstore

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zephyrtronium/radicals"
)

// Substitute replaces each variable in expr that s binds with its value.
// Only whole words are replaced, where a word is a maximal run of ASCII
// letters, digits, and underscores, so a binding for x never touches xy or x2. Negative
// values are parenthesized so that the result still parses the same way.
// Function names are left alone.
func Substitute(expr string, s radicals.Store) string {
	var b strings.Builder
	b.Grow(len(expr))
	for i := 0; i < len(expr); {
		r, sz := utf8.DecodeRuneInString(expr[i:])
		if !isWord(r) {
			b.WriteString(expr[i : i+sz])
			i += sz
			continue
		}
		j := i + sz
		for j < len(expr) {
			r, sz := utf8.DecodeRuneInString(expr[j:])
			if !isWord(r) {
				break
			}
			j += sz
		}
		word := expr[i:j]
		i = j
		if first := word[0]; '0' <= first && first <= '9' || first == '_' || radicals.IsFunc(word) {
			b.WriteString(word)
			continue
		}
		v, ok := s.Lookup(word)
		if !ok {
			b.WriteString(word)
			continue
		}
		num := strconv.FormatFloat(v, 'f', -1, 64)
		if v < 0 {
			num = "(" + num + ")"
		}
		b.WriteString(num)
	}
	return b.String()
}

func isWord(r rune) bool {
	return r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9'
}

// PrependAnswer makes an expression that begins with a binary operator
// continue from the last answer: "+5" becomes "ans+5". A leading minus is
// negation, not subtraction, so it is left alone, as is any expression when
// s has no answer.
func PrependAnswer(expr string, s radicals.Store) string {
	t := strings.TrimLeftFunc(expr, unicode.IsSpace)
	if t == "" || !strings.ContainsRune("+*/^", rune(t[0])) {
		return expr
	}
	if _, ok := s.Lookup(Answer); !ok {
		return expr
	}
	return Answer + t
}
