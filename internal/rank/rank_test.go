package rank

import (
	"errors"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomKey(r *rand.Rand) string {
	n := 1 + r.IntN(6)
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.IntN(base)]
	}
	if b[n-1] == '0' {
		b[n-1] = alphabet[1+r.IntN(base-1)]
	}
	return string(b)
}

func TestGenerate_BothAbsent_ReturnsDefault(t *testing.T) {
	k, err := Generate("", "")
	require.NoError(t, err)
	assert.Equal(t, Default, k)

	again, err := Generate("", "")
	require.NoError(t, err)
	assert.Equal(t, k, again)
}

func TestGenerate_Betweenness(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 5000; i++ {
		a, b := randomKey(r), randomKey(r)
		if a == b {
			continue
		}
		if a > b {
			a, b = b, a
		}
		k, err := Generate(a, b)
		require.NoError(t, err, "Generate(%q, %q)", a, b)
		assert.Negative(t, Compare(a, k), "Generate(%q, %q) = %q", a, b, k)
		assert.Negative(t, Compare(k, b), "Generate(%q, %q) = %q", a, b, k)
		assert.True(t, Valid(k), "Generate(%q, %q) = %q is not a valid key", a, b, k)
	}
}

func TestGenerate_Boundaries(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 2000; i++ {
		k := randomKey(r)

		lo, err := Before(k)
		require.NoError(t, err, "Before(%q)", k)
		assert.Negative(t, Compare(lo, k), "Before(%q) = %q", k, lo)

		hi, err := After(k)
		require.NoError(t, err, "After(%q)", k)
		assert.Positive(t, Compare(hi, k), "After(%q) = %q", k, hi)
	}
}

func TestGenerate_AdjacentKeysExtendLength(t *testing.T) {
	cases := []struct {
		a, b string
	}{
		{"a1", "a2"},
		{"a0", "a1"},
		{"az", "b"},
		{"y", "y1"},
		{"zz", ""},
		{"", "01"},
	}
	for _, tc := range cases {
		k, err := Generate(tc.a, tc.b)
		require.NoError(t, err, "Generate(%q, %q)", tc.a, tc.b)
		if tc.a != "" {
			assert.Greater(t, k, tc.a)
		}
		if tc.b != "" {
			assert.Less(t, k, tc.b)
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	_, err := Generate("b", "a")
	assert.True(t, errors.Is(err, ErrKeyOrder))

	_, err = Generate("a", "a")
	assert.True(t, errors.Is(err, ErrKeyOrder))

	_, err = Generate("A!", "")
	assert.True(t, errors.Is(err, ErrInvalidKey))

	// "y" < "y0" but no string sorts strictly between them.
	_, err = Generate("y", "y0")
	assert.True(t, errors.Is(err, ErrNoSpace))
}

func TestGenerate_TrimsButKeepsCase(t *testing.T) {
	k, err := Generate(" a1 ", "a2")
	require.NoError(t, err)
	assert.Equal(t, "a1i", k)

	// Uppercase sorts before every lowercase digit, so it cannot be a bound.
	_, err = Generate("A", "B")
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = Generate("a", "B")
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = After("Z")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestGenerate_RepeatedInsertionBetweenOriginalPair(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for round := 0; round < 20; round++ {
		type entry struct {
			name string
			key  string
		}
		order := []entry{{"lo", "a0"}, {"hi", "a1"}}
		for i := 0; i < 50; i++ {
			// Insert anywhere strictly inside the original pair.
			at := 1 + r.IntN(len(order)-1)
			k, err := Generate(order[at-1].key, order[at].key)
			require.NoError(t, err)
			order = append(order, entry{})
			copy(order[at+1:], order[at:])
			order[at] = entry{name: string(rune('A'+i%26)) + string(rune('0'+i/26)), key: k}
		}

		sorted := append([]entry(nil), order...)
		sort.Slice(sorted, func(i, j int) bool { return Compare(sorted[i].key, sorted[j].key) < 0 })
		require.Len(t, sorted, 52)

		seen := map[string]bool{}
		for i := range order {
			assert.Equal(t, order[i].name, sorted[i].name, "round %d position %d", round, i)
			assert.False(t, seen[sorted[i].key], "duplicate key %q", sorted[i].key)
			seen[sorted[i].key] = true
		}
	}
}

func TestCompare_TotalOrder(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	keys := make([]string, 0, 60)
	keys = append(keys, "", Default)
	for i := 0; i < 58; i++ {
		keys = append(keys, randomKey(r))
	}

	for _, a := range keys {
		assert.Zero(t, Compare(a, a))
		for _, b := range keys {
			assert.Equal(t, -Compare(b, a), Compare(a, b), "antisymmetry %q %q", a, b)
			for _, c := range keys {
				if Compare(a, b) < 0 && Compare(b, c) < 0 {
					assert.Negative(t, Compare(a, c), "transitivity %q %q %q", a, b, c)
				}
			}
		}
	}
}

func TestCompare_AbsentKeyUsesDefault(t *testing.T) {
	assert.Zero(t, Compare("", Default))
	assert.Zero(t, Compare("  ", ""))
	assert.Negative(t, Compare("", "z"))
	assert.Positive(t, Compare("", "a"))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("a1"))
	assert.True(t, Valid(Default))
	assert.False(t, Valid(""))
	assert.False(t, Valid("y0"))
	assert.False(t, Valid("a-b"))
	assert.False(t, Valid("A"))
	assert.False(t, Valid("aB"))
}

func TestBetweenUnique_AvoidsCollisionByTighteningLowerBound(t *testing.T) {
	existing := map[string]bool{"p": true}
	// Generate("m", "t") yields "p"; the unique variant must step past it.
	r, err := BetweenUnique(existing, "m", "t")
	require.NoError(t, err)
	assert.NotEqual(t, "p", r)
	assert.False(t, existing[r])
	assert.Greater(t, r, "m")
	assert.Less(t, r, "t")
}

func TestBetweenUnique_OpenEndedUpper_IsUnique(t *testing.T) {
	existing := map[string]bool{"hi": true, "hii": true}
	r, err := BetweenUnique(existing, "h", "")
	require.NoError(t, err)
	assert.False(t, existing[r])
	assert.Greater(t, r, "h")
}
