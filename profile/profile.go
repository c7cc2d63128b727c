// Package profile describes a printer's fixed geometry: how many text
// columns it prints, how many dots each column spans, and its dot
// resolution. Profiles are small declaration files so the tool can drive
// more than one printer model without recompiling.
package profile

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	profileLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	profileParser = participle.MustBuild[Document](
		participle.Lexer(profileLexer),
		participle.Elide("Whitespace", "LineComment", "HashComment"),
	)
)

// Document is the root AST node for a profile file.
type Document struct {
	Name     string     `parser:"Newline* 'profile' @Ident Newline*"`
	Settings []*Setting `parser:"LBrace Newline* ( @@ Newline* )* RBrace Newline*"`
}

// Setting is one key: value pair inside the profile block.
type Setting struct {
	Key   string `parser:"@Ident"`
	Value string `parser:"':' @Number"`
}

// Profile is a resolved printer description.
type Profile struct {
	Name          string
	CharsPerLine  int
	PixelsPerChar int
	DPI           float64
}

// Default is the 58mm profile the tool was written against: 32 columns of
// 12 dots at 203 dpi.
func Default() Profile {
	return Profile{Name: "default", CharsPerLine: 32, PixelsPerChar: 12, DPI: 203}
}

// Load reads and resolves a profile file.
func Load(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse parses profile content from an io.Reader.
func Parse(r io.Reader) (Profile, error) {
	doc, err := profileParser.Parse("", r)
	if err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	return resolve(doc)
}

// ParseString parses profile content from a string.
func ParseString(input string) (Profile, error) {
	doc, err := profileParser.ParseString("", input)
	if err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	return resolve(doc)
}

// resolve maps the parsed settings onto a Profile, rejecting unknown,
// duplicate or missing keys so a typo never silently prints at the wrong
// geometry.
func resolve(doc *Document) (Profile, error) {
	p := Profile{Name: doc.Name}
	seen := map[string]bool{}
	for _, s := range doc.Settings {
		if seen[s.Key] {
			return Profile{}, fmt.Errorf("profile %s: duplicate setting %q", doc.Name, s.Key)
		}
		seen[s.Key] = true

		value, err := strconv.ParseFloat(s.Value, 64)
		if err != nil {
			return Profile{}, fmt.Errorf("profile %s: setting %q: %w", doc.Name, s.Key, err)
		}
		if value <= 0 {
			return Profile{}, fmt.Errorf("profile %s: setting %q must be positive", doc.Name, s.Key)
		}

		switch s.Key {
		case "chars-per-line":
			n, err := wholeNumber(value)
			if err != nil {
				return Profile{}, fmt.Errorf("profile %s: chars-per-line: %w", doc.Name, err)
			}
			p.CharsPerLine = n
		case "pixels-per-char":
			n, err := wholeNumber(value)
			if err != nil {
				return Profile{}, fmt.Errorf("profile %s: pixels-per-char: %w", doc.Name, err)
			}
			p.PixelsPerChar = n
		case "dpi":
			p.DPI = value
		default:
			return Profile{}, fmt.Errorf("profile %s: unknown setting %q", doc.Name, s.Key)
		}
	}

	for _, key := range []string{"chars-per-line", "pixels-per-char", "dpi"} {
		if !seen[key] {
			return Profile{}, fmt.Errorf("profile %s: missing setting %q", doc.Name, key)
		}
	}
	return p, nil
}

func wholeNumber(v float64) (int, error) {
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%g is not a whole number", v)
	}
	return int(v), nil
}
