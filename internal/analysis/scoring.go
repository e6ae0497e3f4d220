package analysis

import (
	"math"

	"interviewlens/internal/models"
)

type scoreTarget int

const (
	targetNone scoreTarget = iota
	targetCommunication
	targetConfidence
)

// deductionRule inspects exactly one signal and, when triggered, deducts
// from at most one score and appends one problem with its paired suggestion.
type deductionRule struct {
	name       string
	triggered  func(s *Signals) bool
	target     scoreTarget
	delta      int
	problem    string
	suggestion string
}

// deductionRules is the fixed scoring policy, evaluated in order. Adding or
// removing a rule is a data change here, not a new branch somewhere else.
var deductionRules = []deductionRule{
	{
		name:       "filler_ratio",
		triggered:  func(s *Signals) bool { return float64(s.FillerCount)/float64(max(s.TotalWords, 1)) > 0.05 },
		target:     targetConfidence,
		delta:      3,
		problem:    "Too many filler words used",
		suggestion: "Practice speaking slowly and avoid filler words",
	},
	{
		name:       "hedging",
		triggered:  func(s *Signals) bool { return s.HedgeCount > 2 },
		target:     targetConfidence,
		delta:      2,
		problem:    "Too much hedging language",
		suggestion: "Be more assertive",
	},
	{
		name:       "repeated_words",
		triggered:  func(s *Signals) bool { return s.RepeatedWordTypes > 2 },
		target:     targetCommunication,
		delta:      2,
		problem:    "Frequent repetition of the same words",
		suggestion: "Vary your word choice",
	},
	{
		name:       "sentence_length",
		triggered:  func(s *Signals) bool { return s.AvgSentenceLength > 25 },
		target:     targetCommunication,
		delta:      2,
		problem:    "Sentences are too long",
		suggestion: "Break long thoughts into shorter sentences",
	},
	{
		name:       "readability",
		triggered:  func(s *Signals) bool { return s.Readability < 50 },
		target:     targetCommunication,
		delta:      2,
		problem:    "Sentences are hard to understand",
		suggestion: "Keep sentences short and clear",
	},
	{
		name:       "passive_voice",
		triggered:  func(s *Signals) bool { return s.PassiveSentences > 1 },
		target:     targetCommunication,
		delta:      2,
		problem:    "Frequent use of passive voice",
		suggestion: "Use active voice",
	},
	{
		name:       "action_verbs",
		triggered:  func(s *Signals) bool { return s.ActionVerbCount < 2 },
		target:     targetCommunication,
		delta:      2,
		problem:    "Lack of impactful action verbs",
		suggestion: "Use words like built, developed, designed",
	},
	{
		name:       "pos_diversity",
		triggered:  func(s *Signals) bool { return s.POSDiversity < 8 },
		target:     targetCommunication,
		delta:      2,
		problem:    "Monotonous sentence structure",
		suggestion: "Mix descriptive words, verbs and connectors",
	},
	{
		name:       "starter_variety",
		triggered:  func(s *Signals) bool { return s.StarterVariety < 3 },
		target:     targetNone,
		problem:    "Sentences start similarly",
		suggestion: "Vary sentence starters",
	},
	{
		name:       "connectors",
		triggered:  func(s *Signals) bool { return s.ConnectorCount < 2 },
		target:     targetNone,
		problem:    "Lack of logical connectors",
		suggestion: "Use words like because, therefore, however",
	},
	{
		name:       "star_method",
		triggered:  func(s *Signals) bool { return s.StarKeywordCount < 2 },
		target:     targetNone,
		problem:    "Answer not following STAR method",
		suggestion: "Structure answers as Situation, Task, Action, Result",
	},
	{
		name:       "vocabulary",
		triggered:  func(s *Signals) bool { return s.VocabRichness < 0.4 },
		target:     targetNone,
		problem:    "Limited vocabulary usage",
		suggestion: "Use more varied words",
	},
	{
		name:       "tech_terms",
		triggered:  func(s *Signals) bool { return s.TechTermCount == 0 },
		target:     targetNone,
		problem:    "Lack of technical terms",
		suggestion: "Mention tools, technologies, or concepts used",
	},
	{
		name:       "rambling",
		triggered:  func(s *Signals) bool { return s.TotalWords > 120 && s.SentenceCount < 5 },
		target:     targetNone,
		problem:    "Rambling explanation without breaks",
		suggestion: "Break thoughts into clear sentences",
	},
}

// Score grades one answer. Communication and confidence start at 10 and only
// ever go down (floored at 1); technical depth is 2 points per technical
// term capped at 10. The final score is the mean of the three on a 0-100
// scale. Empty input yields ErrEmptyText, never a clamped result.
func Score(text string) (*models.AnalysisResult, error) {
	signals, err := Extract(text)
	if err != nil {
		return nil, err
	}
	return scoreSignals(signals), nil
}

func scoreSignals(s *Signals) *models.AnalysisResult {
	communication := 10
	confidence := 10
	technical := min(2*s.TechTermCount, 10)

	result := &models.AnalysisResult{
		TechnicalDepthScore: technical,
		Problems:            []string{},
		Suggestions:         []string{},
	}

	for _, rule := range deductionRules {
		if !rule.triggered(s) {
			continue
		}
		switch rule.target {
		case targetCommunication:
			communication -= rule.delta
		case targetConfidence:
			confidence -= rule.delta
		}
		result.Problems = append(result.Problems, rule.problem)
		result.Suggestions = append(result.Suggestions, rule.suggestion)
	}

	communication = max(communication, 1)
	confidence = max(confidence, 1)

	result.CommunicationScore = communication
	result.ConfidenceScore = confidence
	result.FinalInterviewScore = int(math.Round(float64(communication+confidence+technical) / 3.0 * 10))
	return result
}
