package emotion

import (
	"errors"
	"fmt"
	"math"

	"interviewlens/internal/models"
)

// ErrNoValidFrames is returned when not a single frame had a detected face.
var ErrNoValidFrames = errors.New("emotion: no frames with a detected face")

// Summarize aggregates an ordered frame timeline. unitSeconds is the
// wall-clock length of one frame slot (one sampled instant per unit).
//
// Unknown frames are excluded from every denominator but keep their position,
// so appending unknown frames to a timeline never changes the percentages,
// dominant emotion or stress intervals computed from the prefix.
func Summarize(frames []Frame, unitSeconds int) (*models.EmotionSummary, error) {
	if unitSeconds <= 0 {
		unitSeconds = 1
	}

	counts := map[Label]int{}
	valid := 0
	for _, f := range frames {
		if l, ok := f.Label(); ok {
			counts[l]++
			valid++
		}
	}
	if valid == 0 {
		return nil, ErrNoValidFrames
	}

	percentages := make(map[string]float64, len(counts))
	for l, c := range counts {
		percentages[string(l)] = round2(float64(c) / float64(valid) * 100)
	}

	// Strictly-greater comparison in enumeration order keeps the earliest
	// label on ties.
	var dominant Label
	best := 0
	for _, l := range labelOrder {
		if counts[l] > best {
			best = counts[l]
			dominant = l
		}
	}

	// A transition is counted only between two adjacent known frames with
	// different labels; any pair touching an unknown frame is skipped.
	transitions := 0
	for i := 1; i < len(frames); i++ {
		prev, prevOK := frames[i-1].Label()
		cur, curOK := frames[i].Label()
		if prevOK && curOK && prev != cur {
			transitions++
		}
	}
	stability := round2(100 - float64(transitions)/float64(valid)*100)
	if stability < 0 {
		stability = 0
	}

	confidence := percentages[string(Neutral)] + percentages[string(Happy)]
	confidence = round2(math.Min(math.Max(confidence, 0), 100))

	return &models.EmotionSummary{
		DominantEmotion: string(dominant),
		Percentages:     percentages,
		Stability:       stability,
		ConfidenceScore: confidence,
		StressIntervals: stressIntervals(frames, unitSeconds),
	}, nil
}

// stressIntervals records each maximal run of negative-affect frames.
// Unknown frames never open, close or extend a run, so an interval always
// ends on the last stress-labeled index; a run still open at end of stream
// closes there too.
func stressIntervals(frames []Frame, unitSeconds int) []models.StressInterval {
	out := []models.StressInterval{}
	start, last := -1, -1

	flush := func() {
		if start >= 0 {
			out = append(out, newInterval(start, last, unitSeconds))
			start = -1
		}
	}

	for i, f := range frames {
		l, ok := f.Label()
		if !ok {
			continue
		}
		if stressLabels[l] {
			if start < 0 {
				start = i
			}
			last = i
		} else {
			flush()
		}
	}
	flush()
	return out
}

func newInterval(startIdx, endIdx, unitSeconds int) models.StressInterval {
	s := startIdx * unitSeconds
	e := endIdx * unitSeconds
	return models.StressInterval{
		StartSeconds: s,
		EndSeconds:   e,
		Start:        Clock(s),
		End:          Clock(e),
	}
}

// Clock formats seconds as m:ss, e.g. 3 -> "0:03", 83 -> "1:23".
func Clock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
