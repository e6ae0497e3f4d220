package models

import "time"

// Status describes lifecycle state of one analysis run over an interview.
// A record is created as StatusQueued before any processing happens, so a
// client polling the record always sees forward progress or a terminal error.
type Status string

const (
	StatusQueued            Status = "queued"
	StatusTranscribing      Status = "transcribing"
	StatusAnalyzingText     Status = "analyzing_text"
	StatusAnalyzingEmotions Status = "analyzing_emotions"
	StatusCompleted         Status = "completed"
	StatusError             Status = "error"
)

// TranscriptSegment is one timestamped chunk of speech produced by the
// speech-to-text collaborator. Ordered by Start, immutable once produced.
type TranscriptSegment struct {
	Start float64 `json:"start" bson:"start"`
	End   float64 `json:"end" bson:"end"`
	Text  string  `json:"text" bson:"text"`
}

// QAPair is one (question, answer) pair derived from a flattened transcript.
type QAPair struct {
	Question string `json:"question" bson:"question"`
	Answer   string `json:"answer" bson:"answer"`
}

// AnalysisResult holds the scores and feedback for one answer.
type AnalysisResult struct {
	CommunicationScore  int      `json:"communication_score" bson:"communication_score"`
	ConfidenceScore     int      `json:"confidence_score" bson:"confidence_score"`
	TechnicalDepthScore int      `json:"technical_depth_score" bson:"technical_depth_score"`
	FinalInterviewScore int      `json:"final_interview_score" bson:"final_interview_score"`
	Problems            []string `json:"problems_detected" bson:"problems_detected"`
	Suggestions         []string `json:"suggestions" bson:"suggestions"`
}

// QAAnalysis pairs a question/answer with the scoring of the answer.
type QAAnalysis struct {
	Question string         `json:"question" bson:"question"`
	Answer   string         `json:"answer" bson:"answer"`
	Analysis AnalysisResult `json:"analysis" bson:"analysis"`
}

// StressInterval is a maximal contiguous run of negative-affect frames,
// expressed both as raw seconds and as a m:ss clock label for the client.
type StressInterval struct {
	StartSeconds int    `json:"start_seconds" bson:"start_seconds"`
	EndSeconds   int    `json:"end_seconds" bson:"end_seconds"`
	Start        string `json:"start" bson:"start"`
	End          string `json:"end" bson:"end"`
}

// EmotionSummary aggregates a frame-by-frame emotion timeline.
// Percentages only contain labels that actually occurred; "unknown" frames
// (no face detected) are never part of the percentages or the denominator.
type EmotionSummary struct {
	DominantEmotion string             `json:"dominant_emotion" bson:"dominant_emotion"`
	Percentages     map[string]float64 `json:"emotion_percentages" bson:"emotion_percentages"`
	Stability       float64            `json:"emotional_stability" bson:"emotional_stability"`
	ConfidenceScore float64            `json:"confidence_score" bson:"confidence_score"`
	StressIntervals []StressInterval   `json:"stress_timeline" bson:"stress_timeline"`
}

// Interview is the durable aggregate owned by the store. Its ID is assigned
// once at upload accept and never reassigned; the pipeline only ever submits
// partial updates keyed by that ID.
type Interview struct {
	ID              string              `json:"id" bson:"_id"`
	Title           string              `json:"title" bson:"title"`
	Type            string              `json:"type,omitempty" bson:"type,omitempty"`
	Pinned          bool                `json:"pinned" bson:"pinned"`
	Status          Status              `json:"status" bson:"status"`
	DurationSeconds float64             `json:"duration_seconds" bson:"duration_seconds"`
	VideoPath       string              `json:"video_path" bson:"video_path"`
	ThumbnailPath   string              `json:"thumbnail_path,omitempty" bson:"thumbnail_path,omitempty"`
	Transcript      string              `json:"transcript" bson:"transcript"`
	Segments        []TranscriptSegment `json:"segments,omitempty" bson:"segments,omitempty"`
	QAAnalysis      []QAAnalysis        `json:"qa_analysis" bson:"qa_analysis"`
	EmotionAnalysis *EmotionSummary     `json:"emotion_analysis,omitempty" bson:"emotion_analysis,omitempty"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
}

// Report is the wire contract served to clients once analysis is done
// (or partially done, for records still in flight).
type Report struct {
	Status          Status         `json:"status"`
	DurationSeconds float64        `json:"duration_seconds"`
	Transcript      string         `json:"transcript"`
	QAAnalysis      []QAAnalysis   `json:"qa_analysis"`
	EmotionAnalysis EmotionSummary `json:"emotion_analysis"`
}
