package sizing

import (
	"math"
	"testing"
)

func TestParseAreaSeparators(t *testing.T) {
	labels := []string{"80 x 150 cm", "80×150cm", "80 х 150", "80 Х 150", "80X150 CM", "  80x150  "}
	for _, l := range labels {
		got, ok := ParseArea(l)
		if !ok || got != 12000 {
			t.Fatalf("ParseArea(%q) = %v,%v want 12000", l, got, ok)
		}
	}
}

func TestParseSidesCommaDecimal(t *testing.T) {
	w, h, ok := ParseSides("1,5 x 2,25 m")
	if !ok || w != 1.5 || h != 2.25 {
		t.Fatalf("got %v x %v (%v)", w, h, ok)
	}
}

func TestParseAreaRejects(t *testing.T) {
	for _, l := range []string{"", "round", "0x150", "80 by 150", "x150"} {
		if _, ok := ParseArea(l); ok {
			t.Fatalf("ParseArea(%q) should fail", l)
		}
	}
}

func TestScaleFactor(t *testing.T) {
	if got := ScaleFactor("80x150", "160x300"); math.Abs(got-2) > 1e-12 {
		t.Fatalf("doubling sides should give 2, got %v", got)
	}
	for _, l := range []string{"80x150", "200 × 300 cm", "1,5x2"} {
		if got := ScaleFactor(l, l); got != 1 {
			t.Fatalf("ScaleFactor(%q,%q) = %v", l, l, got)
		}
	}
	if got := ScaleFactor("bogus", "160x300"); got != 1 {
		t.Fatalf("unparsable base should give 1, got %v", got)
	}
	if got := ScaleFactor("80x150", ""); got != 1 {
		t.Fatalf("empty target should give 1, got %v", got)
	}
}

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"80 x 150 cm": "80x150",
		"80×150":      "80x150",
		"80 Х 150 см": "80x150",
		"Round 200":   "round200",
	}
	for in, want := range cases {
		if got := NormalizeKey(in); got != want {
			t.Fatalf("NormalizeKey(%q) = %q want %q", in, got, want)
		}
	}
}

func TestSKUFor(t *testing.T) {
	variants := []Variant{
		{SizeLabel: "80 x 150 cm", SKU: "KC-80150"},
		{SizeLabel: "160×230", SKU: "KC-160230"},
	}
	if got := SKUFor(variants, "80x150"); got != "KC-80150" {
		t.Fatalf("got %q", got)
	}
	if got := SKUFor(variants, "160 х 230 см"); got != "KC-160230" {
		t.Fatalf("got %q", got)
	}
	if got := SKUFor(variants, "200x300"); got != "" {
		t.Fatalf("unexpected sku %q", got)
	}
	opts := Options([]string{"80x150", "160x300"}, "80x150", variants)
	if len(opts) != 2 || opts[1].Scale != 2 || opts[0].SKU != "KC-80150" {
		t.Fatalf("options %+v", opts)
	}
}
