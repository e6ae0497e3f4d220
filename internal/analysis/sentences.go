package analysis

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-zA-Z']+`)

// SplitSentences splits text on sentence terminators, keeping the terminator
// with its sentence. Runs of terminators ("...", "?!") stay on one sentence.
func SplitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		for i+1 < len(runes) && isTerminator(runes[i+1]) {
			i++
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// words returns the lowercased alphabetic tokens of text.
func words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// firstWord returns the lowercased first alphabetic token of a sentence.
func firstWord(sentence string) string {
	return wordPattern.FindString(strings.ToLower(sentence))
}
