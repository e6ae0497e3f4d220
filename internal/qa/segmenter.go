// Package qa splits a flat interview transcript into question/answer pairs.
package qa

import (
	"strings"

	"interviewlens/internal/analysis"
	"interviewlens/internal/models"
)

// FallbackQuestion labels the single pair emitted when no question was
// detected anywhere in a non-empty transcript.
const FallbackQuestion = "General Interview Context"

var questionStarters = map[string]bool{
	"how": true, "why": true, "what": true, "where": true, "when": true,
	"tell": true, "describe": true, "could": true, "can": true,
	"would": true, "do": true, "did": true, "share": true,
}

// Segment walks the transcript sentence by sentence, treating each question
// as a boundary. Answer text is everything between a question and the next
// one; sentences before the first question are discarded. An empty
// transcript yields an empty list.
func Segment(transcript string) []models.QAPair {
	if strings.TrimSpace(transcript) == "" {
		return nil
	}

	var pairs []models.QAPair
	var question string
	var answer []string

	flush := func() {
		if question != "" && len(answer) > 0 {
			pairs = append(pairs, models.QAPair{
				Question: question,
				Answer:   strings.Join(answer, " "),
			})
		}
		answer = nil
	}

	for _, sentence := range analysis.SplitSentences(transcript) {
		if isQuestion(sentence) {
			flush()
			question = sentence
			continue
		}
		if question != "" {
			answer = append(answer, sentence)
		}
	}
	flush()

	if len(pairs) == 0 {
		return []models.QAPair{{
			Question: FallbackQuestion,
			Answer:   strings.TrimSpace(transcript),
		}}
	}
	return pairs
}

// isQuestion: ends with a question mark, or opens with an interrogative or
// imperative starter ("tell me about...", "describe a time...").
func isQuestion(sentence string) bool {
	if strings.HasSuffix(sentence, "?") {
		return true
	}
	fields := strings.Fields(strings.ToLower(sentence))
	if len(fields) == 0 {
		return false
	}
	return questionStarters[strings.Trim(fields[0], ".,!?;:'\"")]
}
