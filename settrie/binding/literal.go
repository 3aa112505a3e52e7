// Package binding is the external collaborator layer: an object-handle
// registry, set-literal textual marshalling and iterator cursor
// exposure sitting on top of the settrie core. None of this is "the
// real engineering" (that's the settrie package) — it is the thin glue
// a language binding needs.
package binding

import (
	"strings"

	"github.com/bbva/settrie-go/settrie"
)

// commaEscape is the private transport convention between a native
// core and its binding: string elements that contain a literal comma
// have it substituted for this byte before the set is rendered as
// "{a, b, c}" text, and restored on the way back in. It only matters
// at this boundary — the image codec (settrie/image.go) owns both ends
// of its own wire format and has no need for it. The byte is 0x82, the
// byte Python's surrogateescape spells as U+DC82 (a Go string literal
// cannot hold a lone surrogate, so it is written as a raw byte).
const commaEscape = "\x82"

func escapeCommas(s string) string  { return strings.ReplaceAll(s, ",", commaEscape) }
func restoreCommas(s string) string { return strings.ReplaceAll(s, commaEscape, ",") }

// FormatSetLiteral renders elems as the textual set-literal form:
// "{" + tokens joined by ", " + "}".
func FormatSetLiteral(elems []settrie.Element) string {
	tokens := make([]string, 0, len(elems))
	for _, e := range elems {
		if e.Kind == settrie.KindString {
			e.Str = escapeCommas(e.Str)
		}
		tokens = append(tokens, settrie.Tokenize(e))
	}
	return "{" + strings.Join(tokens, ", ") + "}"
}

// ParseSetLiteral accepts any of the equivalent textual forms:
// "{...}", "set(...)", "set([...])", "frozenset(...)" and their
// empty-set spellings ("{}", "set()", "frozenset()").
func ParseSetLiteral(s string) ([]settrie.Element, error) {
	inner, err := unwrapLiteral(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return []settrie.Element{}, nil
	}

	parts := strings.Split(inner, ", ")
	elems := make([]settrie.Element, 0, len(parts))
	for _, p := range parts {
		e, err := settrie.Detokenize(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		if e.Kind == settrie.KindString {
			e.Str = restoreCommas(e.Str)
		}
		elems = append(elems, e)
	}
	return elems, nil
}

func unwrapLiteral(s string) (string, error) {
	switch {
	case strings.HasPrefix(s, "frozenset(") && strings.HasSuffix(s, ")"):
		return unwrapParens(s[len("frozenset(") : len(s)-1]), nil
	case strings.HasPrefix(s, "set(") && strings.HasSuffix(s, ")"):
		return unwrapParens(s[len("set(") : len(s)-1]), nil
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		return s[1 : len(s)-1], nil
	default:
		return "", settrie.ErrBadToken
	}
}

func unwrapParens(s string) string {
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	return s
}
