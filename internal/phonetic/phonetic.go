// Package phonetic classifies short spoken answers against a vocabulary
// using Double Metaphone codes and Jaro-Winkler similarity.
//
// A vocabulary phrase is a phonetic candidate for an utterance token when
// their Double Metaphone codes overlap; such candidates need only the lower
// phonetic threshold. Phrases without code overlap must clear the higher
// fuzzy threshold. Phonetic candidates always win over fuzzy ones.
package phonetic

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85
)

// Vocabulary maps a label (e.g. "yes") to the phrases that mean it.
type Vocabulary map[string][]string

// YesNo is the vocabulary used for yes/no questions. Romanised Japanese
// answers are included because the robot ships with a Japanese recognizer.
var YesNo = Vocabulary{
	"yes": {"yes", "yeah", "yep", "sure", "okay", "hai", "un"},
	"no":  {"no", "nope", "nah", "iie", "iya"},
}

// Option configures a [Matcher].
type Option func(*Matcher)

// WithPhoneticThreshold sets the minimum score for phonetic candidates.
func WithPhoneticThreshold(threshold float64) Option {
	return func(m *Matcher) { m.phoneticThreshold = threshold }
}

// WithFuzzyThreshold sets the minimum score for candidates without code
// overlap.
func WithFuzzyThreshold(threshold float64) Option {
	return func(m *Matcher) { m.fuzzyThreshold = threshold }
}

// Matcher is read-only after construction and safe for concurrent use.
type Matcher struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// New returns a Matcher with thresholds 0.70 (phonetic) and 0.85 (fuzzy).
func New(opts ...Option) *Matcher {
	m := &Matcher{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Classify returns the label whose phrases best match any token of
// utterance. ok is false when nothing clears its threshold.
func (m *Matcher) Classify(utterance string, vocab Vocabulary) (label string, confidence float64, ok bool) {
	tokens := strings.Fields(strings.ToLower(utterance))
	if len(tokens) == 0 {
		return "", 0, false
	}

	type candidate struct {
		label    string
		score    float64
		phonetic bool
	}
	var best candidate

	for _, tok := range tokens {
		tokCodes := codes(tok)
		for lbl, phrases := range vocab {
			for _, p := range phrases {
				p = strings.ToLower(p)
				score := matchr.JaroWinkler(tok, p, false)
				if overlap(tokCodes, codes(p)) {
					if score >= m.phoneticThreshold && (!best.phonetic || score > best.score) {
						best = candidate{label: lbl, score: score, phonetic: true}
					}
				} else if !best.phonetic && score >= m.fuzzyThreshold && score > best.score {
					best = candidate{label: lbl, score: score}
				}
			}
		}
	}

	if best.label == "" {
		return "", 0, false
	}
	return best.label, best.score, true
}

// codes returns the non-empty Double Metaphone codes of word.
func codes(word string) []string {
	p, s := matchr.DoubleMetaphone(word)
	out := make([]string, 0, 2)
	if p != "" {
		out = append(out, p)
	}
	if s != "" && s != p {
		out = append(out, s)
	}
	return out
}

func overlap(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
