// Package symbols holds the characters that govern the flat path encoding.
//
// Three configured strings (separator, bracket pair, quote pair) are
// reduced to five runes:
//
//	settings := symbols.Settings{Separator: "/", Brackets: "<>", Quotes: `"`}
//	syms, err := settings.Symbols()
//
// A single quote character means the opening and closing quote are the
// same rune.
package symbols

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
)

var ErrBadSettings = errors.New("bad settings")

type Settings struct {
	Separator string `yaml:"separator" json:"separator"`
	Brackets  string `yaml:"brackets" json:"brackets"`
	Quotes    string `yaml:"quotes" json:"quotes"`
}

func DefaultSettings() Settings {
	return Settings{
		Separator: ".",
		Brackets:  "[]",
		Quotes:    "'",
	}
}

type Symbols struct {
	Sep      rune
	LBracket rune
	RBracket rune
	LQuote   rune
	RQuote   rune
}

// Default returns the symbols of DefaultSettings.
func Default() Symbols {
	return Symbols{
		Sep:      '.',
		LBracket: '[',
		RBracket: ']',
		LQuote:   '\'',
		RQuote:   '\'',
	}
}

// Symbols validates the settings and extracts the five symbol runes.
func (s Settings) Symbols() (Symbols, error) {
	sep := []rune(s.Separator)
	brackets := []rune(s.Brackets)
	quotes := []rune(s.Quotes)
	if len(sep) != 1 {
		return Symbols{}, fmt.Errorf("%w: separator %q must be a single character", ErrBadSettings, s.Separator)
	}
	if len(brackets) != 2 {
		return Symbols{}, fmt.Errorf("%w: brackets %q must be exactly 2 characters", ErrBadSettings, s.Brackets)
	}
	if len(quotes) != 1 && len(quotes) != 2 {
		return Symbols{}, fmt.Errorf("%w: quotes %q must be 1 or 2 characters", ErrBadSettings, s.Quotes)
	}
	res := Symbols{
		Sep:      sep[0],
		LBracket: brackets[0],
		RBracket: brackets[1],
		LQuote:   quotes[0],
		RQuote:   quotes[len(quotes)-1],
	}
	if err := res.Validate(); err != nil {
		return Symbols{}, err
	}
	return res, nil
}

// bareLetters are the letters of the reserved words.
const bareLetters = "nulltruefalse"

// Validate checks that the symbols can encode paths unambiguously: the
// separator, brackets and quotes are pairwise distinct (the two quotes
// may coincide) and none of them occurs in the bare encoding of a key
// which is not a string: no digit, no minus sign and no letter of
// "null", "true" or "false".
func (s Symbols) Validate() error {
	all := []rune{s.Sep, s.LBracket, s.RBracket, s.LQuote, s.RQuote}
	for _, r := range all {
		if r == utf8.RuneError || r == 0 {
			return fmt.Errorf("%w: invalid symbol %q", ErrBadSettings, r)
		}
		if r >= '0' && r <= '9' {
			return fmt.Errorf("%w: symbol %q is a digit", ErrBadSettings, r)
		}
		if r == '-' || strings.ContainsRune(bareLetters, r) {
			return fmt.Errorf("%w: symbol %q occurs in bare keys", ErrBadSettings, r)
		}
	}
	// quote open and close are allowed to be equal, so compare the
	// first four against each other and the close quote against the
	// first three.
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if all[i] == all[j] {
				return fmt.Errorf("%w: symbol %q used twice", ErrBadSettings, all[i])
			}
		}
	}
	for i := 0; i < 3; i++ {
		if all[i] == s.RQuote {
			return fmt.Errorf("%w: symbol %q used twice", ErrBadSettings, s.RQuote)
		}
	}
	return nil
}

// Special reports whether r is one of the five symbols.
func (s Symbols) Special(r rune) bool {
	switch r {
	case s.Sep, s.LBracket, s.RBracket, s.LQuote, s.RQuote:
		return true
	}
	return false
}

// Settings returns settings which produce s.
func (s Symbols) Settings() Settings {
	quotes := string(s.LQuote)
	if s.RQuote != s.LQuote {
		quotes += string(s.RQuote)
	}
	return Settings{
		Separator: string(s.Sep),
		Brackets:  string(s.LBracket) + string(s.RBracket),
		Quotes:    quotes,
	}
}

// LoadSettings reads a YAML (or JSON) settings document.  Fields which
// are absent keep their default values.
func LoadSettings(r io.Reader) (Settings, error) {
	res := DefaultSettings()
	d, err := io.ReadAll(r)
	if err != nil {
		return res, err
	}
	if err := yaml.Unmarshal(d, &res); err != nil {
		return res, fmt.Errorf("%w: %w", ErrBadSettings, err)
	}
	return res, nil
}
