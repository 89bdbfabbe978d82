// Package whitespace supplies the word-boundary decisions consumed by the
// segmentation engine: a separator classifier over Unicode codepoints and
// iteration over successive boundary-delimited word spans.
package whitespace

import "unicode"

// Config classifies codepoints as separators. The zero value is not usable;
// construct with Default or FromSeparators.
type Config struct {
	// explicit separator set; nil means "use unicode.IsSpace".
	set map[rune]bool
	// first configured separator; 0 for the default classifier.
	joiner rune
}

// Default returns a Config treating every unicode.IsSpace codepoint as a
// separator.
func Default() Config {
	return Config{}
}

// FromSeparators returns a Config whose separator set is exactly the
// codepoints of s. An empty s yields the Default classifier.
func FromSeparators(s string) Config {
	if s == "" {
		return Default()
	}

	set := make(map[rune]bool)
	var first rune
	for _, r := range s {
		if first == 0 {
			first = r
		}
		set[r] = true
	}
	return Config{set: set, joiner: first}
}

// Joiner returns the canonical separator codepoint for reconstructing text
// from tokens: the first configured separator, or a plain space for the
// default classifier.
func (c Config) Joiner() rune {
	if c.joiner == 0 {
		return ' '
	}
	return c.joiner
}

// IsSeparator reports whether r is a word-boundary separator.
func (c Config) IsSeparator(r rune) bool {
	if c.set == nil {
		return unicode.IsSpace(r)
	}
	return c.set[r]
}

// NextWord returns the end offset (exclusive) of the boundary unit starting
// at start: the run of non-separator codepoints beginning there. If
// runes[start] is itself a separator, NextWord returns start.
func (c Config) NextWord(runes []rune, start int) int {
	end := start
	for end < len(runes) && !c.IsSeparator(runes[end]) {
		end++
	}
	return end
}

// Words returns every boundary-delimited word span of runes as [start, end)
// offset pairs. All-separator input yields no spans.
func (c Config) Words(runes []rune) [][2]int {
	var spans [][2]int

	for i := 0; i < len(runes); {
		if c.IsSeparator(runes[i]) {
			i++
			continue
		}
		end := c.NextWord(runes, i)
		spans = append(spans, [2]int{i, end})
		i = end
	}
	return spans
}
