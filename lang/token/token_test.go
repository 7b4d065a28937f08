package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	for k := Kind(0); k < maxKind; k++ {
		if k == punctStart || k == punctEnd || k == kwStart || k == kwEnd {
			continue
		}
		if k.String() == "" {
			t.Errorf("missing string representation of token kind %d", k)
		}
	}
}

func TestLookupIdent(t *testing.T) {
	for k := kwStart + 1; k < kwEnd; k++ {
		got := LookupIdent(k.String())
		require.Equal(t, k, got)
	}
	require.Equal(t, IDENT, LookupIdent("notAKeyword"))
	require.Equal(t, IDENT, LookupIdent("classify"))
}

func TestGoString(t *testing.T) {
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "'class'", CLASS.GoString())
	require.Equal(t, "identifier", IDENT.GoString())
}

func TestIsKeyword(t *testing.T) {
	require.True(t, CLASS.IsKeyword())
	require.False(t, IDENT.IsKeyword())
	require.False(t, PLUS.IsKeyword())
}
