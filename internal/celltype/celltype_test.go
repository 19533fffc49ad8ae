package celltype

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		raw  string
		want Type
	}{
		{"42", Int},
		{"-7", Int},
		{"3.14", Float},
		{"1,234.5", Float},
		{"$19.99", Currency},
		{"19.99$", Currency},
		{"12%", Percentage},
		{"hello", String},
		{"", Unknown},
		{"  ", Unknown},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Detect(c.raw), "raw=%q", c.raw)
	}
}

func TestLCA(t *testing.T) {
	require.Equal(t, Numeric, LCA(Int, Float))
	require.Equal(t, Float, LCA(Currency, Percentage))
	require.Equal(t, Numeric, LCA(Int, Currency))
	require.Equal(t, Int, LCA(Int, Int))
	require.Equal(t, Unknown, LCA(Int, String))
	require.Equal(t, Unknown, LCA(Unknown, Int))
}

func TestMax(t *testing.T) {
	require.Equal(t, Numeric, Max([]Type{Int, Float, Currency}))
	require.Equal(t, Unknown, Max(nil))
	require.Equal(t, Int, Max([]Type{Int}))
}

func TestLessEq(t *testing.T) {
	require.True(t, LessEq(Int, Numeric))
	require.True(t, LessEq(Currency, Float))
	require.True(t, LessEq(Currency, Numeric))
	require.False(t, LessEq(String, Numeric))
	require.True(t, LessEq(Int, Int))
}

func TestBlankAndIsBlank(t *testing.T) {
	b := Blank(Int)
	f, ok := b.(float64)
	require.True(t, ok)
	require.True(t, math.IsNaN(f))
	require.True(t, IsBlank(Int, math.NaN()))
	require.False(t, IsBlank(Int, 1.0))

	require.Equal(t, "", Blank(String))
	require.True(t, IsBlank(String, ""))
	require.False(t, IsBlank(String, "x"))
}

func TestParseNumeric(t *testing.T) {
	f, ok := ParseNumeric("1,234.50")
	require.True(t, ok)
	require.InDelta(t, 1234.50, f, 1e-9)

	f, ok = ParseNumeric("12%")
	require.True(t, ok)
	require.InDelta(t, 0.12, f, 1e-9)

	f, ok = ParseNumeric("$5")
	require.True(t, ok)
	require.InDelta(t, 5.0, f, 1e-9)

	_, ok = ParseNumeric("")
	require.False(t, ok)

	_, ok = ParseNumeric("abc")
	require.False(t, ok)
}
