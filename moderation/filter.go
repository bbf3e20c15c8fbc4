// Package moderation masks censored words in message text before it is
// persisted or broadcast.
package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Filter matches a censored-word list with an Aho-Corasick automaton and
// replaces matched spans with a mask character. A nil or empty Filter
// passes text through unchanged.
type Filter struct {
	machine *goahocorasick.Machine
	mask    rune
}

func NewFilter(words []string, mask rune) (*Filter, error) {
	if len(words) == 0 {
		return &Filter{mask: mask}, nil
	}
	patterns := make([][]rune, len(words))
	for i, word := range words {
		patterns[i] = lowerRunes([]rune(word))
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Filter{machine: m, mask: mask}, nil
}

// Clean returns text with every censored span masked. Matching is
// case-insensitive; rune positions are preserved.
func (f *Filter) Clean(text string) string {
	if f == nil || f.machine == nil || text == "" {
		return text
	}

	runes := []rune(text)
	spans := f.machine.MultiPatternSearch(lowerRunes(runes), false)
	if len(spans) == 0 {
		return text
	}

	for _, span := range spans {
		end := span.Pos + len(span.Word)
		if span.Pos < 0 || end > len(runes) {
			continue
		}
		for i := span.Pos; i < end; i++ {
			runes[i] = f.mask
		}
	}
	return string(runes)
}

func lowerRunes(input []rune) []rune {
	out := make([]rune, len(input))
	for i, r := range input {
		out[i] = unicode.ToLower(r)
	}
	return out
}
