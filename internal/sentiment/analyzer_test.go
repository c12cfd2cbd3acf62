package sentiment

import (
	"errors"
	"testing"

	"github.com/avkuznetsov/tweetlens/pkg/models"
)

// testLexicon keeps classifier tests deterministic and independent of the
// built-in word list
func testLexicon() Lexicon {
	return Lexicon{
		"love":  3.2,
		"great": 3.1,
		"good":  1.9,
		"hate":  -2.7,
		"awful": -2.0,
		":)":    2.0,
	}
}

func TestAnalyzer_Classify(t *testing.T) {
	analyzer := NewAnalyzer(testLexicon())

	tests := []struct {
		name     string
		text     string
		expected models.Label
	}{
		{
			name:     "positive text",
			text:     "I love this!!! :)",
			expected: models.LabelPositive,
		},
		{
			name:     "negative text",
			text:     "I hate this.",
			expected: models.LabelNegative,
		},
		{
			name:     "neutral text",
			text:     "It is a table.",
			expected: models.LabelNeutral,
		},
		{
			name:     "empty text",
			text:     "",
			expected: models.LabelNeutral,
		},
		{
			name:     "whitespace only",
			text:     "   ",
			expected: models.LabelNeutral,
		},
		{
			name:     "negated positive",
			text:     "this is not good",
			expected: models.LabelNegative,
		},
		{
			name:     "negated negative",
			text:     "not awful at all",
			expected: models.LabelPositive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compound, label, err := analyzer.Classify(tt.text)
			if err != nil {
				t.Fatalf("Classify(%q) returned error: %v", tt.text, err)
			}
			if label != tt.expected {
				t.Errorf("Classify(%q) label = %s, want %s (compound %.4f)",
					tt.text, label, tt.expected, compound)
			}
			if got := LabelFor(compound); got != label {
				t.Errorf("label %s inconsistent with compound %.4f (LabelFor says %s)",
					label, compound, got)
			}
		})
	}
}

func TestAnalyzer_EmptyTextScoresZero(t *testing.T) {
	analyzer := NewAnalyzer(testLexicon())

	compound, label, err := analyzer.Classify("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if compound != 0.0 {
		t.Errorf("expected compound 0.0 for empty text, got %.4f", compound)
	}
	if label != models.LabelNeutral {
		t.Errorf("expected Neutral for empty text, got %s", label)
	}
}

func TestAnalyzer_LexiconUnavailable(t *testing.T) {
	for _, analyzer := range []*Analyzer{NewAnalyzer(nil), NewAnalyzer(Lexicon{})} {
		if analyzer.Ready() {
			t.Fatal("analyzer without lexicon reports ready")
		}
		_, _, err := analyzer.Classify("anything")
		if !errors.Is(err, ErrLexiconUnavailable) {
			t.Errorf("expected ErrLexiconUnavailable, got %v", err)
		}
	}
}

func TestAnalyzer_Heuristics(t *testing.T) {
	analyzer := NewAnalyzer(testLexicon())

	score := func(text string) float64 {
		compound, _, err := analyzer.Classify(text)
		if err != nil {
			t.Fatalf("Classify(%q): %v", text, err)
		}
		return compound
	}

	if base, boosted := score("good"), score("very good"); boosted <= base {
		t.Errorf("booster did not raise score: %.4f vs %.4f", base, boosted)
	}
	if base, emphasized := score("good"), score("good!!!"); emphasized <= base {
		t.Errorf("exclamations did not raise score: %.4f vs %.4f", base, emphasized)
	}
	if base, shouted := score("this is great ok"), score("this is GREAT ok"); shouted <= base {
		t.Errorf("caps emphasis did not raise score: %.4f vs %.4f", base, shouted)
	}
	if allCaps, mixed := score("THIS IS GREAT"), score("this is GREAT ok"); allCaps >= mixed {
		t.Errorf("all-caps text should not get caps emphasis: %.4f vs %.4f", allCaps, mixed)
	}
}

func TestAnalyzer_CompoundRange(t *testing.T) {
	analyzer := NewAnalyzer(testLexicon())

	texts := []string{
		"love love love love love love great great great!!!!",
		"hate hate hate hate awful awful awful awful",
		"it is what it is",
	}

	for _, text := range texts {
		compound, _, err := analyzer.Classify(text)
		if err != nil {
			t.Fatalf("Classify(%q): %v", text, err)
		}
		if compound < -1.0 || compound > 1.0 {
			t.Errorf("compound out of range for %q: %.4f", text, compound)
		}
	}
}

func TestLabelFor_Thresholds(t *testing.T) {
	tests := []struct {
		compound float64
		expected models.Label
	}{
		{0.05, models.LabelPositive},
		{0.0499, models.LabelNeutral},
		{0.0, models.LabelNeutral},
		{-0.0499, models.LabelNeutral},
		{-0.05, models.LabelNegative},
		{0.9, models.LabelPositive},
		{-0.9, models.LabelNegative},
	}

	for _, tt := range tests {
		if got := LabelFor(tt.compound); got != tt.expected {
			t.Errorf("LabelFor(%.4f) = %s, want %s", tt.compound, got, tt.expected)
		}
	}
}

func TestDefault_CoversScenario(t *testing.T) {
	analyzer := NewAnalyzer(Default())

	_, label, err := analyzer.Classify("I love this!!! :)")
	if err != nil {
		t.Fatal(err)
	}
	if label != models.LabelPositive {
		t.Errorf("expected Positive, got %s", label)
	}

	_, label, err = analyzer.Classify("I hate this.")
	if err != nil {
		t.Fatal(err)
	}
	if label != models.LabelNegative {
		t.Errorf("expected Negative, got %s", label)
	}
}
