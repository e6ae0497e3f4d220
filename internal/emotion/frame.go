// Package emotion aggregates a per-instant facial-emotion timeline into
// stability, stress and confidence metrics.
package emotion

// Label is one of the closed set of detectable emotions.
type Label string

const (
	Happy    Label = "happy"
	Neutral  Label = "neutral"
	Sad      Label = "sad"
	Angry    Label = "angry"
	Fear     Label = "fear"
	Disgust  Label = "disgust"
	Surprise Label = "surprise"
)

// labelOrder is the fixed enumeration used for dominant-emotion tie-breaks.
var labelOrder = []Label{Happy, Neutral, Sad, Angry, Fear, Disgust, Surprise}

var stressLabels = map[Label]bool{Fear: true, Sad: true, Angry: true, Disgust: true}

// ParseLabel validates a classifier string against the closed label set.
func ParseLabel(s string) (Label, bool) {
	for _, l := range labelOrder {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Frame is one sampled instant of the timeline. An instant where no face was
// detected is "unknown": it keeps its position so indices stay aligned with
// wall-clock time, but it never counts as a real emotion in percentage,
// transition or stress computation.
type Frame struct {
	label Label
	known bool
}

// Known wraps a detected label.
func Known(l Label) Frame { return Frame{label: l, known: true} }

// Unknown marks an instant with no detected face.
func Unknown() Frame { return Frame{} }

// Label returns the detected label and whether a face was detected at all.
func (f Frame) Label() (Label, bool) { return f.label, f.known }
