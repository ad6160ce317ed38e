package bwt

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"unicode"
)

func randStr(alphabet string, l int) string {
	a := []rune(alphabet)
	s := &strings.Builder{}
	s.Grow(l)
	for range l {
		s.WriteRune(a[rand.IntN(len(a))])
	}
	return s.String()
}

// rotationTransform is the textbook construction: materialize every cyclic
// rotation, sort them, take the last column.
func rotationTransform(s string) string {
	w := append([]rune(s), Terminator)
	n := len(w)

	rots := make([][]rune, n)
	for i := range n {
		rots[i] = append(slices.Clone(w[i:]), w[:i]...)
	}

	fold := func(r rune) rune {
		if r == Terminator {
			return -1
		}
		return unicode.ToLower(r)
	}
	slices.SortStableFunc(rots, func(a, b []rune) int {
		for k := range a {
			if fa, fb := fold(a[k]), fold(b[k]); fa != fb {
				if fa < fb {
					return -1
				}
				return 1
			}
		}
		return 0
	})

	out := make([]rune, n)
	for i, r := range rots {
		out[i] = r[n-1]
	}
	return string(out)
}

func TestKnown(t *testing.T) {
	for _, tc := range []struct {
		in, out string
	}{
		{"", "$"},
		{"A", "A$"},
		{"ACGTGT", "T$ATCGG"},
		{"acgtgt", "t$atcgg"},
		{"banana", "annb$aa"},
		{"AAAA", "AAAA$"},
	} {
		t.Run(tc.in, func(t *testing.T) {
			have, err := Transform(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if have != tc.out {
				t.Fatalf("Transform(%q) = %q, want %q", tc.in, have, tc.out)
			}

			back, err := Inverse(have)
			if err != nil {
				t.Fatal(err)
			}
			if back != tc.in {
				t.Fatalf("Inverse(%q) = %q, want %q", have, back, tc.in)
			}
		})
	}
}

func TestRand(t *testing.T) {
	alphabets := []string{
		"ACGT",
		"ACGTacgtN",
		"ab",
		"abcXYZ019_[]^`!#",
		"αβγΑΒΓ",
	}

	for _, alphabet := range alphabets {
		for range 50 {
			str := randStr(alphabet, rand.IntN(40))

			t.Run(fmt.Sprintf("%s/%s", alphabet, str), func(t *testing.T) {
				enc, err := Transform(str)
				if err != nil {
					t.Fatal(err)
				}

				if have, want := len([]rune(enc)), len([]rune(str))+1; have != want {
					t.Fatalf("length %d != %d", have, want)
				}

				encRunes := []rune(enc)
				wantRunes := append([]rune(str), Terminator)
				slices.Sort(encRunes)
				slices.Sort(wantRunes)
				if !slices.Equal(encRunes, wantRunes) {
					t.Fatalf("%q is not a permutation of %q", enc, str+"$")
				}

				if have, want := enc, rotationTransform(str); have != want {
					t.Fatalf("Transform %q != rotation order %q", have, want)
				}

				dec, err := Inverse(enc)
				if err != nil {
					t.Fatal(err)
				}
				if dec != str {
					t.Fatalf("Decoded %q != %q", dec, str)
				}
			})
		}
	}
}

func TestCase(t *testing.T) {
	lower, err := Transform("acgtgt")
	if err != nil {
		t.Fatal(err)
	}
	upper, err := Transform("ACGTGT")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.EqualFold(lower, upper) {
		t.Fatalf("case changed ordering: %q vs %q", lower, upper)
	}

	for enc, want := range map[string]string{lower: "acgtgt", upper: "ACGTGT"} {
		dec, err := Inverse(enc)
		if err != nil {
			t.Fatal(err)
		}
		if dec != want {
			t.Fatalf("Inverse(%q) = %q, want %q", enc, dec, want)
		}
	}

	mixed := "AcGtgTaCCa"
	enc, err := Transform(mixed)
	if err != nil {
		t.Fatal(err)
	}
	dec, err := Inverse(enc)
	if err != nil {
		t.Fatal(err)
	}
	if dec != mixed {
		t.Fatalf("mixed case round trip %q != %q", dec, mixed)
	}
}

func TestTerminatorSortsFirst(t *testing.T) {
	// Symbols below '$' in code point order must still sort after it.
	for _, s := range []string{" ", "!", "#", "\t", "a b!"} {
		enc, err := Transform(s)
		if err != nil {
			t.Fatal(err)
		}
		dec, err := Inverse(enc)
		if err != nil {
			t.Fatal(err)
		}
		if dec != s {
			t.Fatalf("round trip %q != %q", dec, s)
		}
	}
}

func TestMalformed(t *testing.T) {
	for _, tc := range []struct {
		name string
		fn   func(string) (string, error)
		in   string
	}{
		{"transform terminator", Transform, "AC$GT"},
		{"transform only terminator", Transform, "$"},
		{"transform invalid utf8", Transform, "AC\xffGT"},
		{"inverse empty", Inverse, ""},
		{"inverse no terminator", Inverse, "ACGTGT"},
		{"inverse two terminators", Inverse, "T$AT$CGG"},
		{"inverse not a transform", Inverse, "$AB"},
		{"inverse invalid utf8", Inverse, "T$\xffA"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.fn(tc.in)
			if !errors.Is(err, ErrMalformedInput) {
				t.Fatalf("error %v is not ErrMalformedInput", err)
			}
			if out != "" {
				t.Fatalf("partial output %q on failure", out)
			}
		})
	}
}

func TestInverseNoTerminator(t *testing.T) {
	for range 100 {
		s := randStr("ACGTacgt", rand.IntN(20))
		if _, err := Inverse(s); !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("Inverse(%q): error %v is not ErrMalformedInput", s, err)
		}
	}
}
