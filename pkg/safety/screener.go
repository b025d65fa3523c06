// Package safety screens incoming messages for crisis content before they
// reach the AI responder. A hit short-circuits the normal flow: the relay
// answers with crisis resources instead of a generated reply.
package safety

import (
	"fmt"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// Screener matches messages against a set of crisis keyword phrases.
// Matching is insensitive to case, punctuation, and spacing: both the
// phrases and the scanned text are normalized to bare lowercase letters
// and digits before the automaton runs.
type Screener struct {
	matcher *goahocorasick.Machine
	hotline string
	reply   string
}

// NewScreener initializes the Aho-Corasick automaton from the given rules.
// Empty rule fields fall back to the built-in defaults.
func NewScreener(rules Rules) (*Screener, error) {
	defaults := DefaultRules()
	if len(rules.Keywords) == 0 {
		rules.Keywords = defaults.Keywords
	}
	if rules.Hotline == "" {
		rules.Hotline = defaults.Hotline
	}
	if rules.Reply == "" {
		rules.Reply = defaults.Reply
	}

	patterns := lo.Map(rules.Keywords, func(word string, _ int) []rune {
		return normalizeRunes([]rune(word))
	})

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("build keyword automaton: %w", err)
	}

	return &Screener{
		matcher: m,
		hotline: rules.Hotline,
		reply:   rules.Reply,
	}, nil
}

// Screen reports whether the message contains crisis content.
func (s *Screener) Screen(message string) bool {
	norm := normalizeRunes([]rune(message))
	if len(norm) == 0 {
		return false
	}
	return len(s.matcher.MultiPatternSearch(norm, true)) > 0
}

// Response returns the crisis reply, with the configured hotline number
// substituted for the {hotline} placeholder.
func (s *Screener) Response() string {
	return strings.ReplaceAll(s.reply, "{hotline}", s.hotline)
}

// normalizeRunes lowercases the input and drops everything that is not a
// letter or digit, so "K!ll myself" and "kill myself" normalize equally.
func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		out = append(out, unicode.ToLower(r))
	}
	return out
}
