// Package rank generates and compares lexicographic position keys.
//
// Keys are lowercase base36 strings ordered by plain byte comparison. New keys are
// produced by fractional-indexing midpoints, so inserting between two items never
// rewrites either neighbor.
package rank

import (
	"errors"
	"strings"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const base = len(alphabet)

// Default is the key of an item that has never been positioned. It is also the key
// Generate returns when both bounds are absent.
const Default = "i"

var (
	ErrInvalidKey = errors.New("rank: invalid key")
	ErrKeyOrder   = errors.New("rank: lower bound must sort before upper bound")
	ErrNoSpace    = errors.New("rank: no key fits between bounds")
)

func digit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return 10 + int(c-'a'), true
	default:
		return 0, false
	}
}

// normalize only trims: Compare orders raw bytes, so case is never folded.
func normalize(k string) string {
	return strings.TrimSpace(k)
}

func wellFormed(k string) bool {
	for i := 0; i < len(k); i++ {
		if _, ok := digit(k[i]); !ok {
			return false
		}
	}
	return true
}

// Valid reports whether k can be used as a bound for every possible neighbor.
//
// A valid key is non-empty, uses only the lowercase alphabet and does not end with the
// minimal digit: nothing sorts strictly between "y" and "y0".
func Valid(k string) bool {
	k = normalize(k)
	if k == "" || !wellFormed(k) {
		return false
	}
	return k[len(k)-1] != alphabet[0]
}

// Compare orders two keys. Absent (blank) keys compare as Default.
func Compare(a, b string) int {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" {
		a = Default
	}
	if b == "" {
		b = Default
	}
	return strings.Compare(a, b)
}

// Generate returns a key strictly between before and after. Either bound may be
// empty, meaning unbounded on that side.
//
// Bounds outside the alphabet (uppercase included) fail with ErrInvalidKey.
// The result is deterministic for a given pair and never ends with the minimal digit,
// so it is always a valid key itself. When the bounds are adjacent digits the result
// grows one digit longer instead of failing.
func Generate(before, after string) (string, error) {
	a := normalize(before)
	b := normalize(after)
	if !wellFormed(a) || !wellFormed(b) {
		return "", ErrInvalidKey
	}
	if a != "" && b != "" && a >= b {
		return "", ErrKeyOrder
	}

	out := make([]byte, 0, len(a)+2)
	bounded := b != ""
	for i := 0; ; i++ {
		da := 0
		if i < len(a) {
			da, _ = digit(a[i])
		}
		db := base
		if bounded {
			if i >= len(b) {
				// b is a prefix of a padded with zeros: "y" vs "y0".
				return "", ErrNoSpace
			}
			db, _ = digit(b[i])
		}

		if da == db {
			out = append(out, alphabet[da])
			continue
		}
		if db-da > 1 {
			out = append(out, alphabet[da+(db-da)/2])
			return string(out), nil
		}
		// Adjacent digits. Keeping da here already sorts below b, so only a remains
		// as a bound for the following positions.
		out = append(out, alphabet[da])
		bounded = false
	}
}

// After returns a key sorting after k.
func After(k string) (string, error) { return Generate(k, "") }

// Before returns a key sorting before k.
func Before(k string) (string, error) { return Generate("", k) }

// BetweenUnique returns a key between lower and upper that is not already present in
// existing. existing keys must be trimmed.
//
// On collision the lower bound is tightened to the colliding key and the midpoint is
// taken again, so each retry yields a different value.
func BetweenUnique(existing map[string]bool, lower, upper string) (string, error) {
	cur := normalize(lower)
	upper = normalize(upper)
	for i := 0; i < 256; i++ {
		r, err := Generate(cur, upper)
		if err != nil {
			return "", err
		}
		if !existing[r] {
			return r, nil
		}
		cur = r
	}
	return "", errors.New("rank: unable to find unique key")
}
