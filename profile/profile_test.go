package profile_test

import (
	"strings"
	"testing"

	"github.com/ostium/miniprint/profile"
)

const sampleProfile = `
profile tm-t20 {
  // 58mm paper at the narrow font
  chars-per-line: 32
  pixels-per-char: 12
  dpi: 203
}
`

func TestParseProfile(t *testing.T) {
	p, err := profile.ParseString(sampleProfile)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.Name != "tm-t20" {
		t.Fatalf("name = %q", p.Name)
	}
	if p.CharsPerLine != 32 || p.PixelsPerChar != 12 || p.DPI != 203 {
		t.Fatalf("unexpected geometry: %+v", p)
	}
}

func TestParseProfileReader(t *testing.T) {
	p, err := profile.Parse(strings.NewReader(sampleProfile))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.CharsPerLine != 32 {
		t.Fatalf("unexpected geometry: %+v", p)
	}
}

func TestParseProfileFractionalDPI(t *testing.T) {
	p, err := profile.ParseString(`profile dense {
  chars-per-line: 48
  pixels-per-char: 8
  dpi: 180.5
}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.DPI != 180.5 {
		t.Fatalf("dpi = %g", p.DPI)
	}
}

func TestParseProfileErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{
			"unknown setting",
			"profile p {\n  chars-per-line: 32\n  pixels-per-char: 12\n  dpi: 203\n  paper-width: 58\n}",
		},
		{
			"missing setting",
			"profile p {\n  chars-per-line: 32\n  dpi: 203\n}",
		},
		{
			"duplicate setting",
			"profile p {\n  chars-per-line: 32\n  chars-per-line: 42\n  pixels-per-char: 12\n  dpi: 203\n}",
		},
		{
			"fractional column count",
			"profile p {\n  chars-per-line: 32.5\n  pixels-per-char: 12\n  dpi: 203\n}",
		},
		{
			"zero value",
			"profile p {\n  chars-per-line: 0\n  pixels-per-char: 12\n  dpi: 203\n}",
		},
		{
			"not a profile",
			"papers please",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := profile.ParseString(tc.input); err == nil {
				t.Fatalf("expected error for:\n%s", tc.input)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	p := profile.Default()
	if p.CharsPerLine != 32 || p.PixelsPerChar != 12 || p.DPI != 203 {
		t.Fatalf("unexpected default: %+v", p)
	}
}
