package ratio

import (
	"errors"
	"math/rand"
	"testing"
)

var limit13 = []int{2, 3, 5, 7, 11, 13}

func TestFactorize(t *testing.T) {
	m, err := Factorize(MustParse("81/80"), []int{2, 3, 5})
	if err != nil {
		t.Fatalf("Factorize: %v", err)
	}
	want := Monzo{-4, 4, -1}
	for i := range want {
		if m[i] != want[i] {
			t.Fatalf("81/80 = %s, want %s", m, want)
		}
	}
}

func TestFactorizeUnsupportedPrime(t *testing.T) {
	_, err := Factorize(MustParse("7/6"), []int{2, 3, 5})
	if !errors.Is(err, ErrUnsupportedPrimeFactor) {
		t.Fatalf("error = %v, want ErrUnsupportedPrimeFactor", err)
	}
}

func TestFactorizeRoundTrip(t *testing.T) {
	for _, in := range []string{"1", "3/2", "81/80", "250/243", "531441/524288", "169/168", "4375/4374", "1600000/1594323"} {
		r := MustParse(in)
		m, err := Factorize(r, limit13)
		if err != nil {
			t.Fatalf("Factorize(%s): %v", in, err)
		}
		back, err := m.Ratio(limit13)
		if err != nil {
			t.Fatalf("Ratio(%s): %v", m, err)
		}
		if back != r {
			t.Fatalf("round trip %s -> %s -> %s", r, m, back)
		}
	}
}

func TestRandomMonzoRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	primes := []int{2, 3, 5, 7}
	for i := 0; i < 200; i++ {
		m := make(Monzo, len(primes))
		for j := range m {
			m[j] = rnd.Intn(9) - 4
		}
		r, err := m.Ratio(primes)
		if err != nil {
			t.Fatalf("Ratio(%s): %v", m, err)
		}
		back, err := Factorize(r, primes)
		if err != nil {
			t.Fatalf("Factorize(%s): %v", r, err)
		}
		for j := range m {
			if back[j] != m[j] {
				t.Fatalf("round trip %s -> %s -> %s", m, r, back)
			}
		}
	}
}

func TestMonzoArithmetic(t *testing.T) {
	fifth := Monzo{-1, 1, 0}
	fourth := Monzo{2, -1, 0}
	octave, err := fifth.Add(fourth)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if r, _ := octave.Ratio([]int{2, 3, 5}); r.String() != "2" {
		t.Fatalf("fifth + fourth = %s", r)
	}
	fourFifths := fifth.Scale(4)
	syntonic, err := fourFifths.Sub(Monzo{0, 0, 1})
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if r, _ := syntonic.Ratio([]int{2, 3, 5}); r.String() != "81/80" {
		t.Fatalf("four fifths minus 5/1 = %s", r)
	}
	if r, _ := fifth.Neg().Ratio([]int{2, 3, 5}); r.String() != "2/3" {
		t.Fatalf("inverted fifth = %s", r)
	}
	if _, err := fifth.Add(Monzo{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected length mismatch, got %v", err)
	}
}

func TestMonzoProject(t *testing.T) {
	m := Monzo{1, 0, 0, 1} // 14 over 2.3.5.7
	got, err := m.Project([]int{2, 3, 5, 7}, []int{2, 7, 11})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if got[0] != 1 || got[1] != 1 || got[2] != 0 {
		t.Fatalf("Project = %s", got)
	}
	if _, err := (Monzo{0, 1, 0, 0}).Project([]int{2, 3, 5, 7}, []int{2, 7}); !errors.Is(err, ErrUnsupportedPrimeFactor) {
		t.Fatalf("expected ErrUnsupportedPrimeFactor, got %v", err)
	}
}

func TestMonzoRatioOverflow(t *testing.T) {
	if _, err := (Monzo{70}).Ratio([]int{2}); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
}

func TestParseMonzo(t *testing.T) {
	for _, in := range []string{"[-4 4 -1>", "-4, 4, -1", "|-4 4 -1>"} {
		m, err := ParseMonzo(in)
		if err != nil {
			t.Fatalf("ParseMonzo(%q): %v", in, err)
		}
		if m.String() != "[-4 4 -1>" {
			t.Fatalf("ParseMonzo(%q) = %s", in, m)
		}
	}
	if _, err := ParseMonzo("[]"); err == nil {
		t.Fatalf("expected error for empty monzo")
	}
}
