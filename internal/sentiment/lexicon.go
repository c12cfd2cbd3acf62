package sentiment

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrLexiconUnavailable indicates the sentiment lexicon could not be loaded.
// Classification is impossible until a lexicon is available; callers must not
// confuse this with a legitimate Neutral result.
var ErrLexiconUnavailable = errors.New("sentiment lexicon unavailable")

// Lexicon maps lowercase tokens to valence weights on the -4..4 scale
type Lexicon map[string]float64

// LoadFile reads a tab-separated token/valence lexicon file (VADER format;
// columns past the second are ignored)
func LoadFile(path string) (Lexicon, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLexiconUnavailable, err)
	}
	defer file.Close()

	lex := make(Lexicon)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		valence, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		lex[strings.ToLower(fields[0])] = valence
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLexiconUnavailable, err)
	}
	if len(lex) == 0 {
		return nil, fmt.Errorf("%w: %s has no usable entries", ErrLexiconUnavailable, path)
	}

	return lex, nil
}

// Default returns the built-in lexicon used when no external file is configured
func Default() Lexicon {
	lex := make(Lexicon)
	for word, valence := range buildPositiveWords() {
		lex[word] = valence
	}
	for word, valence := range buildNegativeWords() {
		lex[word] = valence
	}
	for emoticon, valence := range buildEmoticons() {
		lex[emoticon] = valence
	}
	return lex
}

// buildPositiveWords returns positive valence entries
func buildPositiveWords() map[string]float64 {
	return map[string]float64{
		"love":       3.2,
		"loved":      2.9,
		"loving":     2.9,
		"adore":      3.2,
		"amazing":    2.8,
		"awesome":    3.1,
		"great":      3.1,
		"excellent":  2.7,
		"fantastic":  2.6,
		"wonderful":  2.7,
		"perfect":    2.7,
		"brilliant":  2.8,
		"beautiful":  2.9,
		"best":       3.2,
		"better":     1.9,
		"good":       1.9,
		"nice":       1.8,
		"fine":       0.8,
		"happy":      2.7,
		"glad":       2.0,
		"joy":        2.8,
		"fun":        2.3,
		"enjoy":      2.2,
		"enjoyed":    2.3,
		"win":        2.8,
		"winner":     2.8,
		"winning":    2.4,
		"success":    2.7,
		"successful": 2.6,
		"thanks":     1.9,
		"thank":      2.1,
		"grateful":   2.3,
		"excited":    2.3,
		"exciting":   2.2,
		"impressive": 2.3,
		"proud":      2.1,
		"like":       1.5,
		"liked":      1.8,
		"recommend":  1.6,
		"cool":       1.3,
		"wow":        2.8,
		"congrats":   2.4,
		"hope":       1.9,
		"improved":   1.8,
		"smooth":     1.1,
	}
}

// buildNegativeWords returns negative valence entries
func buildNegativeWords() map[string]float64 {
	return map[string]float64{
		"hate":         -2.7,
		"hated":        -2.8,
		"hates":        -2.3,
		"terrible":     -2.1,
		"horrible":     -2.5,
		"awful":        -2.0,
		"bad":          -2.5,
		"worst":        -3.1,
		"worse":        -2.1,
		"sad":          -2.1,
		"unhappy":      -1.8,
		"angry":        -2.3,
		"furious":      -2.7,
		"annoyed":      -1.6,
		"annoying":     -1.7,
		"disappointed":  -2.2,
		"disappointing": -2.2,
		"disgusting":    -2.4,
		"fail":         -2.5,
		"failed":       -2.3,
		"failure":      -2.6,
		"broken":       -1.9,
		"bug":          -1.5,
		"bugs":         -1.6,
		"crash":        -1.8,
		"useless":      -1.8,
		"wrong":        -2.1,
		"problem":      -1.7,
		"problems":     -1.7,
		"pain":         -2.0,
		"painful":      -2.0,
		"boring":       -1.3,
		"lost":         -1.3,
		"lose":         -1.6,
		"losing":       -1.6,
		"scam":         -2.4,
		"fraud":        -2.8,
		"ugly":         -2.2,
		"stupid":       -2.4,
		"dumb":         -2.3,
		"nasty":        -2.3,
		"poor":         -1.9,
		"mess":         -1.6,
		"slow":         -1.1,
		"fear":         -2.2,
		"scared":       -1.9,
	}
}

// buildEmoticons returns valences for common text emoticons
func buildEmoticons() map[string]float64 {
	return map[string]float64{
		":)":   2.0,
		":-)":  2.1,
		":d":   2.3,
		":-d":  2.3,
		";)":   1.6,
		"<3":   2.6,
		":(":   -1.9,
		":-(":  -2.0,
		":/":   -1.4,
		":'(":  -2.2,
		"</3":  -2.5,
	}
}
