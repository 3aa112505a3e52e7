package settrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeDetokenizeRoundTrip(t *testing.T) {
	cases := []Element{
		Int(0),
		Int(-17),
		Int(42),
		Real(3.14),
		Real(-0.5),
		String("Mon"),
		String(""),
	}
	for _, e := range cases {
		tok := Tokenize(e)
		back, err := Detokenize(tok)
		require.NoError(t, err)
		require.Equal(t, e.Kind, back.Kind)
		switch e.Kind {
		case KindInt:
			require.Equal(t, e.Int, back.Int)
		case KindReal:
			require.Equal(t, e.Real, back.Real)
		case KindString:
			require.Equal(t, e.Str, back.Str)
		}
	}
}

func TestTokenizeIntVsRealDontCollide(t *testing.T) {
	require.NotEqual(t, Tokenize(Int(3)), Tokenize(Real(3.0)))
	require.Equal(t, "3.0", Tokenize(Real(3.0)))
	require.Equal(t, "3", Tokenize(Int(3)))
}

func TestDetokenizeBadToken(t *testing.T) {
	_, err := Detokenize("not-a-number")
	require.ErrorIs(t, err, ErrBadToken)
}

func TestCanonicalSortDedupsAndOrders(t *testing.T) {
	set := []Element{Int(4), Int(3), Int(2), Int(3)}
	got := CanonicalSort(set)
	require.Equal(t, []string{"2", "3", "4"}, got)
}

func TestCanonicalSortEmptySet(t *testing.T) {
	require.Empty(t, CanonicalSort(nil))
}

func TestOpaqueTokenPassesThroughUnchanged(t *testing.T) {
	e := Opaque("already-canonical")
	require.Equal(t, "already-canonical", Tokenize(e))
	require.Equal(t, KindOpaque, e.Kind)
}
