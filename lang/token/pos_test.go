package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPosLineCol(t *testing.T) {
	cases := []struct {
		line, col int
	}{
		{1, 1},
		{42, 7},
		{1000, 1},
	}
	for _, c := range cases {
		p := MakePos(c.line, c.col)
		require.Equal(t, c.line, p.Line())
		require.Equal(t, c.col, p.Col())
		require.True(t, p.Valid())
	}
}

func TestNoPos(t *testing.T) {
	require.False(t, NoPos.Valid())
	require.Equal(t, 0, NoPos.Line())
	require.Equal(t, 0, NoPos.Col())
}
