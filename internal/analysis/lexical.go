package analysis

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyText is returned for empty or whitespace-only input.
var ErrEmptyText = errors.New("analysis: empty text")

// Category word lists. Multi-word entries are matched as whole phrases; a
// term never matches inside a longer word ("um" does not match "umbrella").
var (
	fillerWords  = []string{"um", "uh", "like", "you know", "so", "actually", "basically"}
	hedgeWords   = []string{"maybe", "perhaps", "might", "could"}
	weakPhrases  = []string{"i think", "maybe", "probably", "sort of", "kind of"}
	actionVerbs  = []string{"built", "created", "developed", "implemented", "designed", "optimized"}
	techTerms    = []string{"python", "java", "arduino", "iot", "machine learning", "database", "api", "react", "node", "algorithm", "data structure"}
	connectors   = []string{"because", "therefore", "however", "so", "then", "while", "although"}
	starKeywords = []string{"situation", "task", "action", "result"}
)

var (
	fillerPatterns  = compilePhrases(fillerWords)
	hedgePatterns   = compilePhrases(hedgeWords)
	weakPatterns    = compilePhrases(weakPhrases)
	actionPatterns  = compilePhrases(actionVerbs)
	techPatterns    = compilePhrases(techTerms)
	connPatterns    = compilePhrases(connectors)
	starPatterns    = compilePhrases(starKeywords)
	digitPattern    = regexp.MustCompile(`[0-9]`)
	punctTrimCutset = ".,!?;:()\"'"
)

func compilePhrases(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(terms))
	for i, t := range terms {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(t) + `\b`)
	}
	return out
}

func countMatches(text string, patterns []*regexp.Regexp) int {
	n := 0
	for _, p := range patterns {
		n += len(p.FindAllStringIndex(text, -1))
	}
	return n
}

// Signals is the structured bag of counts and ratios the scoring rules read.
type Signals struct {
	TotalWords    int
	UniqueWords   int
	VocabRichness float64

	FillerCount      int
	HedgeCount       int
	WeakPhraseCount  int
	ActionVerbCount  int
	TechTermCount    int
	ConnectorCount   int
	StarKeywordCount int

	RepeatedWordTypes int

	SentenceCount     int
	SentenceLengths   []int
	AvgSentenceLength float64
	PassiveSentences  int
	SentenceStarters  []string
	StarterVariety    int

	NumericCount int
	POSDiversity int
	Readability  float64
}

// Extract tokenizes text and computes every lexical signal in one pass over
// the input. Empty or whitespace-only input yields ErrEmptyText.
func Extract(text string) (*Signals, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	lower := strings.ToLower(text)
	ws := words(text)
	sentences := SplitSentences(text)

	s := &Signals{
		TotalWords:    len(ws),
		SentenceCount: len(sentences),
	}

	unique := make(map[string]int, len(ws))
	for _, w := range ws {
		unique[w]++
	}
	s.UniqueWords = len(unique)
	s.VocabRichness = float64(s.UniqueWords) / float64(max(s.TotalWords, 1))
	for _, c := range unique {
		if c > 3 {
			s.RepeatedWordTypes++
		}
	}

	s.FillerCount = countMatches(lower, fillerPatterns)
	s.HedgeCount = countMatches(lower, hedgePatterns)
	s.WeakPhraseCount = countMatches(lower, weakPatterns)
	s.ActionVerbCount = countMatches(lower, actionPatterns)
	s.TechTermCount = countMatches(lower, techPatterns)
	s.ConnectorCount = countMatches(lower, connPatterns)
	s.StarKeywordCount = countMatches(lower, starPatterns)

	starters := make(map[string]bool)
	for _, sent := range sentences {
		s.SentenceLengths = append(s.SentenceLengths, len(strings.Fields(sent)))
		if isPassiveSentence(sent) {
			s.PassiveSentences++
		}
		if fw := firstWord(sent); fw != "" {
			s.SentenceStarters = append(s.SentenceStarters, fw)
			starters[fw] = true
		}
	}
	s.StarterVariety = len(starters)
	s.AvgSentenceLength = float64(s.TotalWords) / float64(max(s.SentenceCount, 1))

	s.NumericCount = countNumericTokens(lower)
	s.POSDiversity = posCategoryCount(lower)
	s.Readability = fleschReadingEase(ws, s.SentenceCount)

	return s, nil
}

// countNumericTokens counts digit-bearing tokens plus spelled-out numbers.
func countNumericTokens(lower string) int {
	n := 0
	for _, tok := range strings.Fields(lower) {
		tok = strings.Trim(tok, punctTrimCutset)
		if tok == "" {
			continue
		}
		if digitPattern.MatchString(tok) || numberWords[tok] {
			n++
		}
	}
	return n
}
