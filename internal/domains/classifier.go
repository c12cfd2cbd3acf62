package domains

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
)

// LabelOther is assigned when no topic keyword matches
const LabelOther = "Other"

// Lexicon maps a topic label to the lowercase keywords that indicate it.
// Multi-word phrases are supported.
type Lexicon map[string][]string

// Classifier assigns a coarse topic to post text by counting keyword hits
type Classifier struct {
	lexicon Lexicon
	labels  []string
}

// NewClassifier creates a classifier over the built-in topic lexicon
func NewClassifier() *Classifier {
	return NewClassifierWithLexicon(defaultLexicon())
}

// NewClassifierWithLexicon creates a classifier over a custom lexicon.
// Labels are title-normalized and keywords lowercased; label order is made
// deterministic so ties always resolve the same way.
func NewClassifierWithLexicon(lexicon Lexicon) *Classifier {
	normalized := make(Lexicon, len(lexicon))
	for rawLabel, keywords := range lexicon {
		label := normalizeLabel(rawLabel)
		if label == "" {
			continue
		}
		cleaned := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				cleaned = append(cleaned, kw)
			}
		}
		if len(cleaned) > 0 {
			normalized[label] = cleaned
		}
	}

	labels := make([]string, 0, len(normalized))
	for label := range normalized {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	return &Classifier{lexicon: normalized, labels: labels}
}

// LoadLexicon reads a {"Label": ["keyword", ...]} JSON file
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read topic lexicon: %w", err)
	}

	var lexicon Lexicon
	if err := json.Unmarshal(data, &lexicon); err != nil {
		return nil, fmt.Errorf("failed to parse topic lexicon: %w", err)
	}
	if len(lexicon) == 0 {
		return nil, fmt.Errorf("topic lexicon %s has no entries", path)
	}

	return lexicon, nil
}

// Classify returns the best-matching topic and its raw keyword-hit count as
// confidence. Text with no keyword hits is labeled Other with confidence 0.
func (c *Classifier) Classify(text string) (string, float64) {
	lowered := strings.ToLower(text)

	bestLabel := LabelOther
	bestScore := 0
	for _, label := range c.labels {
		score := 0
		for _, kw := range c.lexicon[label] {
			if strings.Contains(lowered, kw) {
				score++
			}
		}
		if score > bestScore {
			bestLabel = label
			bestScore = score
		}
	}

	return bestLabel, float64(bestScore)
}

// normalizeLabel collapses whitespace and title-cases each word
func normalizeLabel(label string) string {
	words := strings.Fields(strings.ToLower(label))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// defaultLexicon returns the built-in topic keyword sets
func defaultLexicon() Lexicon {
	return Lexicon{
		"Politics": {
			"election", "policy", "government", "senate", "parliament",
			"minister", "president", "vote", "campaign", "politics",
			"congress", "diplomacy", "democracy",
		},
		"Sports": {
			"match", "game", "tournament", "league", "goal", "score",
			"coach", "athlete", "football", "soccer", "nba", "cricket",
			"tennis", "olympics",
		},
		"Education": {
			"school", "college", "university", "curriculum", "exam",
			"teacher", "student", "degree", "research", "scholarship",
			"classroom",
		},
		"Technology": {
			"ai", "artificial intelligence", "software", "hardware", "app",
			"coding", "programming", "cloud", "saas", "api", "data", "ml",
			"blockchain", "crypto", "startup",
		},
		"Entertainment": {
			"movie", "film", "music", "album", "song", "celebrity", "tv",
			"series", "hollywood", "bollywood", "concert", "festival",
		},
		"Business": {
			"market", "stock", "revenue", "profit", "merger", "acquisition",
			"startup", "funding", "economy", "inflation", "trade", "sales",
			"earnings",
		},
		"Health": {
			"hospital", "doctor", "nurse", "vaccine", "covid", "disease",
			"medicine", "mental health", "fitness", "diet", "wellness",
		},
		"Science": {
			"research", "study", "experiment", "theory", "physics",
			"chemistry", "biology", "astronomy", "space", "quantum", "lab",
		},
		"Travel": {
			"flight", "airport", "hotel", "tour", "trip", "journey", "visa",
			"tourism", "itinerary",
		},
		"Environment": {
			"climate", "emissions", "sustainability", "wildlife",
			"conservation", "pollution", "renewable", "recycling",
			"ecosystem",
		},
	}
}
