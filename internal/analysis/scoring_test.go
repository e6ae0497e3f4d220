package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goodSignals is a baseline that triggers no deduction rule.
func goodSignals() *Signals {
	return &Signals{
		TotalWords:        100,
		UniqueWords:       50,
		VocabRichness:     0.5,
		FillerCount:       0,
		HedgeCount:        0,
		ActionVerbCount:   3,
		TechTermCount:     3,
		ConnectorCount:    3,
		StarKeywordCount:  2,
		RepeatedWordTypes: 0,
		SentenceCount:     6,
		AvgSentenceLength: 15,
		PassiveSentences:  0,
		StarterVariety:    5,
		POSDiversity:      9,
		Readability:       70,
	}
}

func TestScoreEmptyText(t *testing.T) {
	_, err := Score("")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestScoreSignalsNoDeductions(t *testing.T) {
	res := scoreSignals(goodSignals())

	assert.Equal(t, 10, res.CommunicationScore)
	assert.Equal(t, 10, res.ConfidenceScore)
	assert.Equal(t, 6, res.TechnicalDepthScore, "2 points per technical term")
	assert.Equal(t, 87, res.FinalInterviewScore, "round((10+10+6)/3*10)")
	assert.Empty(t, res.Problems)
	assert.Empty(t, res.Suggestions)
}

func TestScoreSignalsEveryRuleTriggered(t *testing.T) {
	s := &Signals{
		TotalWords:        130,
		FillerCount:       20,
		HedgeCount:        3,
		RepeatedWordTypes: 3,
		AvgSentenceLength: 30,
		Readability:       20,
		PassiveSentences:  2,
		ActionVerbCount:   0,
		POSDiversity:      4,
		StarterVariety:    1,
		ConnectorCount:    0,
		StarKeywordCount:  0,
		VocabRichness:     0.2,
		TechTermCount:     0,
		SentenceCount:     3,
	}
	res := scoreSignals(s)

	assert.Equal(t, 1, res.CommunicationScore, "clamped at the floor, never below 1")
	assert.Equal(t, 5, res.ConfidenceScore)
	assert.Equal(t, 0, res.TechnicalDepthScore)
	assert.Equal(t, 20, res.FinalInterviewScore)
	require.Len(t, res.Problems, len(deductionRules))
	require.Len(t, res.Suggestions, len(deductionRules))
	assert.Equal(t, "Too many filler words used", res.Problems[0], "rule order is fixed")
	assert.Equal(t, "Rambling explanation without breaks", res.Problems[len(res.Problems)-1])
}

func TestScoreSignalsSingleRules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(s *Signals)
		wantComm int
		wantConf int
		problem  string
	}{
		{
			name:     "filler ratio above threshold",
			mutate:   func(s *Signals) { s.FillerCount = 6 },
			wantComm: 10, wantConf: 7,
			problem: "Too many filler words used",
		},
		{
			name:     "hedging above threshold",
			mutate:   func(s *Signals) { s.HedgeCount = 3 },
			wantComm: 10, wantConf: 8,
			problem: "Too much hedging language",
		},
		{
			name:     "repeated words",
			mutate:   func(s *Signals) { s.RepeatedWordTypes = 3 },
			wantComm: 8, wantConf: 10,
			problem: "Frequent repetition of the same words",
		},
		{
			name:     "long sentences",
			mutate:   func(s *Signals) { s.AvgSentenceLength = 26 },
			wantComm: 8, wantConf: 10,
			problem: "Sentences are too long",
		},
		{
			name:     "low readability",
			mutate:   func(s *Signals) { s.Readability = 49 },
			wantComm: 8, wantConf: 10,
			problem: "Sentences are hard to understand",
		},
		{
			name:     "passive voice",
			mutate:   func(s *Signals) { s.PassiveSentences = 2 },
			wantComm: 8, wantConf: 10,
			problem: "Frequent use of passive voice",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := goodSignals()
			tc.mutate(s)
			res := scoreSignals(s)
			assert.Equal(t, tc.wantComm, res.CommunicationScore)
			assert.Equal(t, tc.wantConf, res.ConfidenceScore)
			require.Len(t, res.Problems, 1)
			assert.Equal(t, tc.problem, res.Problems[0])
		})
	}
}

func TestScoreSignalsThresholdBoundaries(t *testing.T) {
	// exactly at the threshold must not trigger
	s := goodSignals()
	s.FillerCount = 5 // ratio exactly 0.05
	s.HedgeCount = 2
	s.PassiveSentences = 1
	res := scoreSignals(s)
	assert.Equal(t, 10, res.CommunicationScore)
	assert.Equal(t, 10, res.ConfidenceScore)
	assert.Empty(t, res.Problems)
}

func TestScoreSignalsTechnicalDepthCap(t *testing.T) {
	s := goodSignals()
	s.TechTermCount = 7
	assert.Equal(t, 10, scoreSignals(s).TechnicalDepthScore)

	s.TechTermCount = 1
	assert.Equal(t, 2, scoreSignals(s).TechnicalDepthScore)
}

func TestScoreFillerHeavyAnswer(t *testing.T) {
	res, err := Score("Um, I built the API. Um, I designed the database. Um, I optimized the algorithm.")
	require.NoError(t, err)

	assert.Equal(t, 7, res.ConfidenceScore, "filler deduction only")
	assert.Contains(t, res.Problems, "Too many filler words used")
	assert.Contains(t, res.Suggestions, "Practice speaking slowly and avoid filler words")
}

func TestScoreBoundsOnAdversarialInput(t *testing.T) {
	inputs := []string{
		"a",
		"bad bad bad bad word word word word stuff stuff stuff stuff thing thing thing thing",
		strings.Repeat("um uh like ", 60),
		strings.Repeat("incomprehensibility notwithstanding uncharacteristically ", 50),
		"How did you deploy the service? I built it using a database and an API, then I optimized it.",
	}
	for _, in := range inputs {
		res, err := Score(in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.CommunicationScore, 1)
		assert.LessOrEqual(t, res.CommunicationScore, 10)
		assert.GreaterOrEqual(t, res.ConfidenceScore, 1)
		assert.LessOrEqual(t, res.ConfidenceScore, 10)
		assert.GreaterOrEqual(t, res.TechnicalDepthScore, 0)
		assert.LessOrEqual(t, res.TechnicalDepthScore, 10)
		assert.GreaterOrEqual(t, res.FinalInterviewScore, 0)
		assert.LessOrEqual(t, res.FinalInterviewScore, 100)
		assert.Len(t, res.Suggestions, len(res.Problems))
	}
}
