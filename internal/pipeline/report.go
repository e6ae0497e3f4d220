package pipeline

import "interviewlens/internal/models"

// Synthesize merges the transcript, per-answer scoring and the emotion
// summary into the wire-contract report. Any input may be absent or empty;
// missing parts become documented defaults (empty transcript, empty analysis
// list, empty emotion mapping) rather than failures, and the merge is a pure
// function of its inputs.
func Synthesize(status models.Status, durationSeconds float64, transcript string, qaResults []models.QAAnalysis, summary *models.EmotionSummary) models.Report {
	report := models.Report{
		Status:          status,
		DurationSeconds: durationSeconds,
		Transcript:      transcript,
		QAAnalysis:      qaResults,
	}
	if report.QAAnalysis == nil {
		report.QAAnalysis = []models.QAAnalysis{}
	}
	if summary != nil {
		report.EmotionAnalysis = *summary
	}
	if report.EmotionAnalysis.Percentages == nil {
		report.EmotionAnalysis.Percentages = map[string]float64{}
	}
	if report.EmotionAnalysis.StressIntervals == nil {
		report.EmotionAnalysis.StressIntervals = []models.StressInterval{}
	}
	return report
}

// ReportFrom synthesizes the report for a stored record, whatever stage the
// record has reached.
func ReportFrom(interview *models.Interview) models.Report {
	return Synthesize(
		interview.Status,
		interview.DurationSeconds,
		interview.Transcript,
		interview.QAAnalysis,
		interview.EmotionAnalysis,
	)
}
