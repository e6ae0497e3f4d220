package analysis

import "strings"

// fleschReadingEase computes the standard Flesch reading-ease score:
// 206.835 - 1.015*(words/sentences) - 84.6*(syllables/word).
func fleschReadingEase(ws []string, sentenceCount int) float64 {
	if len(ws) == 0 || sentenceCount == 0 {
		return 0
	}
	syllables := 0
	for _, w := range ws {
		syllables += countSyllables(w)
	}
	wordsPerSentence := float64(len(ws)) / float64(sentenceCount)
	syllablesPerWord := float64(syllables) / float64(len(ws))
	return 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
}

// countSyllables approximates syllables as vowel groups, with the usual
// silent-e correction. Every word has at least one syllable.
func countSyllables(w string) int {
	w = strings.ToLower(w)
	count := 0
	prevVowel := false
	for _, r := range w {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if count > 1 && strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
