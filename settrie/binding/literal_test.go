package binding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bbva/settrie-go/settrie"
)

func TestParseSetLiteralForms(t *testing.T) {
	cases := []struct {
		literal string
		want    []settrie.Element
	}{
		{"{2, 3, 4}", []settrie.Element{settrie.Int(2), settrie.Int(3), settrie.Int(4)}},
		{"set()", []settrie.Element{}},
		{"frozenset()", []settrie.Element{}},
		{"{}", []settrie.Element{}},
		{"set([2, 3])", []settrie.Element{settrie.Int(2), settrie.Int(3)}},
		{"frozenset({'Mon', 'Tue'})", []settrie.Element{settrie.String("Mon"), settrie.String("Tue")}},
	}
	for _, c := range cases {
		got, err := ParseSetLiteral(c.literal)
		require.NoError(t, err, c.literal)
		require.Equal(t, c.want, got, c.literal)
	}
}

func TestFormatSetLiteralRoundTrip(t *testing.T) {
	elems := []settrie.Element{settrie.Int(2), settrie.Int(3), settrie.String("x")}
	literal := FormatSetLiteral(elems)
	back, err := ParseSetLiteral(literal)
	require.NoError(t, err)
	require.Equal(t, elems, back)
}

func TestCommaInStringEscapedThroughLiteral(t *testing.T) {
	elems := []settrie.Element{settrie.String("a,b")}
	literal := FormatSetLiteral(elems)
	require.NotContains(t, literal, "a,b") // comma must be escaped, not literal

	back, err := ParseSetLiteral(literal)
	require.NoError(t, err)
	require.Equal(t, elems, back)
}

func TestParseSetLiteralRejectsGarbage(t *testing.T) {
	_, err := ParseSetLiteral("not a set")
	require.Error(t, err)
}
