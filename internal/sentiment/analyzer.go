package sentiment

import (
	"math"
	"strings"
	"unicode"

	"github.com/avkuznetsov/tweetlens/pkg/models"
)

const (
	// normalizationAlpha approximates the maximum expected raw score
	normalizationAlpha = 15.0
	// negationDampener flips and weakens a valence inside a negation window
	negationDampener = -0.74
	// capsEmphasis is added to an all-caps token's valence magnitude
	capsEmphasis = 0.733
	// exclamationEmphasis is added per trailing "!", capped at four
	exclamationEmphasis = 0.292
	maxExclamations     = 4
	// negationWindow is how many preceding tokens are checked for negators
	negationWindow = 3

	punctuationCutset = `.,!?;:"'`
)

// Analyzer scores text polarity against an injected lexicon.
// It is immutable after construction and safe for concurrent use.
type Analyzer struct {
	lexicon   Lexicon
	negations map[string]struct{}
	boosters  map[string]float64
}

// NewAnalyzer creates an analyzer over the given lexicon. The lexicon is
// loaded once at startup and never mutated afterwards.
func NewAnalyzer(lexicon Lexicon) *Analyzer {
	return &Analyzer{
		lexicon:   lexicon,
		negations: buildNegations(),
		boosters:  buildBoosters(),
	}
}

// Ready reports whether a usable lexicon is loaded
func (a *Analyzer) Ready() bool {
	return len(a.lexicon) > 0
}

// Classify computes the compound polarity of text in [-1, 1] and its label.
// Empty or fully neutral text yields (0, Neutral). Without a lexicon it
// fails with ErrLexiconUnavailable instead of faking a Neutral result.
func (a *Analyzer) Classify(text string) (float64, models.Label, error) {
	if !a.Ready() {
		return 0, "", ErrLexiconUnavailable
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return 0, models.LabelNeutral, nil
	}

	emphasizeCaps := hasMixedCase(words)

	var sum float64
	for i, word := range words {
		valence, ok := a.lookup(word)
		if !ok {
			continue
		}

		if emphasizeCaps && isAllCaps(word) {
			valence += math.Copysign(capsEmphasis, valence)
		}

		valence = a.applyContext(valence, words, i)
		sum += valence
	}

	if sum != 0 {
		emphasis := float64(min(countExclamations(text), maxExclamations)) * exclamationEmphasis
		sum += math.Copysign(emphasis, sum)
	}

	compound := normalize(sum)

	return compound, LabelFor(compound), nil
}

// LabelFor maps a compound score onto a label using fixed thresholds:
// >= 0.05 Positive, <= -0.05 Negative, Neutral otherwise.
func LabelFor(compound float64) models.Label {
	switch {
	case compound >= 0.05:
		return models.LabelPositive
	case compound <= -0.05:
		return models.LabelNegative
	default:
		return models.LabelNeutral
	}
}

// lookup finds a token's valence, trying the raw lowercase token first so
// emoticons like ":)" survive the punctuation trim
func (a *Analyzer) lookup(word string) (float64, bool) {
	lowered := strings.ToLower(word)
	if valence, ok := a.lexicon[lowered]; ok {
		return valence, true
	}
	trimmed := strings.Trim(lowered, punctuationCutset)
	if trimmed == "" || trimmed == lowered {
		return 0, false
	}
	valence, ok := a.lexicon[trimmed]
	return valence, ok
}

// applyContext adjusts a token's valence for negators and intensifiers in
// the preceding window
func (a *Analyzer) applyContext(valence float64, words []string, idx int) float64 {
	start := idx - negationWindow
	if start < 0 {
		start = 0
	}
	for j := idx - 1; j >= start; j-- {
		prev := strings.Trim(strings.ToLower(words[j]), punctuationCutset)
		if boost, ok := a.boosters[prev]; ok && j == idx-1 {
			valence += math.Copysign(boost, valence)
		}
		if _, ok := a.negations[prev]; ok {
			return valence * negationDampener
		}
	}
	return valence
}

// normalize maps an unbounded raw score into [-1, 1]
func normalize(score float64) float64 {
	compound := score / math.Sqrt(score*score+normalizationAlpha)
	if compound > 1 {
		return 1
	}
	if compound < -1 {
		return -1
	}
	return compound
}

func countExclamations(text string) int {
	return strings.Count(text, "!")
}

// hasMixedCase reports whether the text mixes all-caps and normal words;
// shouting only counts as emphasis when not everything is shouted
func hasMixedCase(words []string) bool {
	caps, lower := false, false
	for _, word := range words {
		if !hasLetter(word) {
			continue
		}
		if isAllCaps(word) {
			caps = true
		} else {
			lower = true
		}
	}
	return caps && lower
}

func isAllCaps(word string) bool {
	if !hasLetter(word) {
		return false
	}
	for _, r := range word {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func hasLetter(word string) bool {
	for _, r := range word {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// buildNegations returns tokens that flip a following valence
func buildNegations() map[string]struct{} {
	words := []string{
		"not", "no", "never", "none", "nobody", "nothing", "neither", "nor",
		"cannot", "cant", "can't", "dont", "don't", "doesnt", "doesn't",
		"didnt", "didn't", "isnt", "isn't", "wasnt", "wasn't", "arent",
		"aren't", "wont", "won't", "wouldnt", "wouldn't", "shouldnt",
		"shouldn't", "couldnt", "couldn't", "without", "hardly", "barely",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// buildBoosters returns intensity adjustments for the immediately
// preceding token
func buildBoosters() map[string]float64 {
	return map[string]float64{
		"absolutely": 0.293,
		"completely": 0.293,
		"extremely":  0.293,
		"incredibly": 0.293,
		"really":     0.267,
		"remarkably": 0.267,
		"so":         0.241,
		"totally":    0.241,
		"truly":      0.241,
		"very":       0.293,
		"quite":      0.181,
		"pretty":     0.152,
		"almost":     -0.181,
		"kinda":      -0.293,
		"less":       -0.293,
		"marginally": -0.293,
		"slightly":   -0.293,
		"somewhat":   -0.241,
	}
}
