package model

import (
	"errors"
	"testing"

	"github.com/verte-zerg/edotune/internal/layout"
	"github.com/verte-zerg/edotune/internal/notation"
	"github.com/verte-zerg/edotune/internal/temperament"
)

func TestDescriptorTemperament(t *testing.T) {
	tm, err := Descriptor{Steps: 13, Limit: 13}.Temperament()
	if err != nil {
		t.Fatalf("Temperament: %v", err)
	}
	if got := tm.Val().String(); got != "<13, 21, 30, 36, 45, 48|" {
		t.Fatalf("val = %s", got)
	}

	tm, err = Descriptor{Steps: 13, Primes: "2.5.11.13"}.Temperament()
	if err != nil {
		t.Fatalf("Temperament: %v", err)
	}
	if got := tm.Val().String(); got != "<13, 30, 45, 48|" {
		t.Fatalf("val = %s", got)
	}
}

func TestDescriptorValidate(t *testing.T) {
	cases := []Descriptor{
		{Steps: 0, Limit: 5},
		{Steps: 12, Primes: "2.4.5"},
		{Steps: 12, Primes: "2.3", Limit: 5},
		{Steps: 12, Limit: 1},
		{Steps: 12, Limit: 5, Generators: &notation.GeneratorSpec{Primary: 0, Secondary: 1}},
		{Steps: 12, Limit: 5, Layout: &layout.Spec{Rows: 0, Cols: 5}},
		{Steps: 12, Limit: 5, Ratios: []string{""}},
	}
	for _, d := range cases {
		if err := d.Validate(); err == nil {
			t.Fatalf("expected %+v to be invalid", d)
		}
	}
	ok := Descriptor{
		Steps:      12,
		Limit:      5,
		Generators: &notation.GeneratorSpec{Primary: 2, Secondary: 1, Accidental: 1},
		Layout:     &layout.Spec{RowGen: 1, ColGen: 2, Rows: 3, Cols: 4},
		Ratios:     []string{"7/4"},
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestDescriptorWithoutSubgroup(t *testing.T) {
	if _, err := (Descriptor{Steps: 12}).Temperament(); !errors.Is(err, temperament.ErrInvalidSubgroup) {
		t.Fatalf("expected ErrInvalidSubgroup, got %v", err)
	}
}

func TestParsedRatios(t *testing.T) {
	rs, err := Descriptor{Ratios: []string{"14/8", "3"}}.ParsedRatios()
	if err != nil {
		t.Fatalf("ParsedRatios: %v", err)
	}
	if rs[0].String() != "7/4" || rs[1].String() != "3" {
		t.Fatalf("unexpected ratios %v", rs)
	}
	if _, err := (Descriptor{Ratios: []string{"3/0"}}).ParsedRatios(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestScanConfigValidate(t *testing.T) {
	if err := (ScanConfig{From: 5, To: 53, Limit: 7, Top: 10}).Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	bad := []ScanConfig{
		{From: 0, To: 12, Limit: 5},
		{From: 20, To: 12, Limit: 5},
		{From: 5, To: 12, Limit: 5, Workers: -1},
		{From: 5, To: 12, Primes: "2.3.9"},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Fatalf("expected %+v to be invalid", c)
		}
	}
}
