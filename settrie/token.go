package settrie

import (
	"sort"
	"strconv"
	"strings"
)

// Kind tags the scalar types an Element can hold. The comparator used
// to order trie edges is defined once, on tokens — Kind only decides
// how detokenize reconstructs a value.
type Kind int

const (
	KindInt Kind = iota
	KindReal
	KindString
	// KindOpaque carries a value whose textual form was supplied
	// directly by the caller and passes through tokenize unchanged.
	KindOpaque
)

// Element is a single scalar that can be threaded onto a trie edge.
type Element struct {
	Kind Kind
	Int  int64
	Real float64
	Str  string
}

func Int(v int64) Element    { return Element{Kind: KindInt, Int: v} }
func Real(v float64) Element { return Element{Kind: KindReal, Real: v} }
func String(v string) Element { return Element{Kind: KindString, Str: v} }

// Opaque wraps a pre-rendered token. detokenize cannot recover a Kind
// for it beyond KindOpaque; used for values the caller already
// canonicalized externally.
func Opaque(token string) Element { return Element{Kind: KindOpaque, Str: token} }

// Tokenize encodes a scalar into its canonical textual form. Integers
// render without a decimal point, reals always carry one (so "3" and
// "3.0" never collide), strings are single-quoted.
func Tokenize(e Element) string {
	switch e.Kind {
	case KindInt:
		return strconv.FormatInt(e.Int, 10)
	case KindReal:
		s := strconv.FormatFloat(e.Real, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case KindString:
		return "'" + e.Str + "'"
	default:
		return e.Str
	}
}

// Detokenize reverses Tokenize using a shape heuristic: a token
// bracketed by single quotes is a string, otherwise a token containing
// a dot is a real, otherwise an integer.
func Detokenize(token string) (Element, error) {
	if len(token) >= 2 && token[0] == '\'' && token[len(token)-1] == '\'' {
		return String(token[1 : len(token)-1]), nil
	}
	if strings.Contains(token, ".") {
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return Element{}, ErrBadToken
		}
		return Real(f), nil
	}
	i, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return Element{}, ErrBadToken
	}
	return Int(i), nil
}

// CanonicalSort tokenizes every element, sorts the tokens by
// lexicographic byte order and deduplicates. This order is what
// threads a set's elements through the trie and what the
// subset/superset traversals rely on.
func CanonicalSort(set []Element) []string {
	tokens := make([]string, 0, len(set))
	for _, e := range set {
		tokens = append(tokens, Tokenize(e))
	}
	sort.Strings(tokens)
	return dedupSorted(tokens)
}

func dedupSorted(tokens []string) []string {
	if len(tokens) == 0 {
		return tokens
	}
	out := tokens[:1]
	for _, t := range tokens[1:] {
		if t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return out
}
