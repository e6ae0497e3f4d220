// Package pipeline sequences one interview analysis run: probe ->
// transcription -> text scoring -> emotion aggregation -> report. Progress
// is communicated exclusively through persisted status updates, so a client
// polling the record always sees forward progress or a terminal error.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"interviewlens/internal/analysis"
	"interviewlens/internal/emotion"
	"interviewlens/internal/media"
	"interviewlens/internal/metrics"
	"interviewlens/internal/models"
	"interviewlens/internal/qa"
	"interviewlens/internal/repositories"
)

// Collaborator contracts. Concrete implementations live in
// internal/clients and internal/media; tests substitute fakes.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]models.TranscriptSegment, error)
}

type FrameClassifier interface {
	Classify(ctx context.Context, imagePath string) (emotion.Frame, error)
}

type Media interface {
	Probe(ctx context.Context, videoPath string) (media.Info, error)
	ExtractAudio(ctx context.Context, videoPath, outPath string) error
	ExtractThumbnail(ctx context.Context, videoPath string, atSeconds float64, outPath string) error
	SampleFrames(ctx context.Context, videoPath, outDir string, unitSeconds int) ([]string, error)
}

type Options struct {
	// WorkDir hosts per-run temp directories; defaults to os.TempDir().
	WorkDir string
	// MediaDir receives persisted thumbnails; empty disables thumbnails.
	MediaDir string
	// UnitSeconds is the wall-clock length of one sampled frame slot.
	UnitSeconds int
	// CleanupGrace delays temp removal so decoder processes can release
	// file handles first.
	CleanupGrace time.Duration
}

type Pipeline struct {
	repo        repositories.InterviewRepository
	transcriber Transcriber
	classifier  FrameClassifier
	media       Media
	opts        Options
	log         *zap.Logger
}

func New(repo repositories.InterviewRepository, transcriber Transcriber, classifier FrameClassifier, m Media, opts Options, logger *zap.Logger) *Pipeline {
	if opts.WorkDir == "" {
		opts.WorkDir = os.TempDir()
	}
	if opts.UnitSeconds <= 0 {
		opts.UnitSeconds = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		repo:        repo,
		transcriber: transcriber,
		classifier:  classifier,
		media:       m,
		opts:        opts,
		log:         logger,
	}
}

// Run executes one full analysis for the record identified by interviewID.
// Stages run strictly sequentially; each stage persists its status (and any
// computed fields) before the next stage starts. Any fatal failure persists
// StatusError and stops without touching later fields.
func (p *Pipeline) Run(ctx context.Context, interviewID, videoPath string) error {
	log := p.log.With(zap.String("interview_id", interviewID))
	started := time.Now()
	outcome := "completed"
	defer func() {
		metrics.ObserveRun(outcome, time.Since(started))
	}()

	tmpDir, err := os.MkdirTemp(p.opts.WorkDir, "run-"+interviewID+"-")
	if err != nil {
		outcome = "error"
		return p.fail(interviewID, "workspace", err, log)
	}
	defer p.cleanup(tmpDir, log)

	// Stage 1: probe duration + representative still.
	stage := time.Now()
	info, err := p.media.Probe(ctx, videoPath)
	if err != nil {
		outcome = "error"
		return p.fail(interviewID, "probe", err, log)
	}
	metrics.ObserveStage("probe", time.Since(stage))

	fields := map[string]any{
		"status":           models.StatusTranscribing,
		"duration_seconds": info.DurationSeconds,
	}
	if thumb := p.extractThumbnail(ctx, interviewID, videoPath, info, log); thumb != "" {
		fields["thumbnail_path"] = thumb
	}
	if err := p.repo.UpdateFields(ctx, interviewID, fields); err != nil {
		outcome = "error"
		return p.fail(interviewID, "persist transcribing status", err, log)
	}

	// Stage 2: audio extraction + transcription. No transcript means nothing
	// downstream is meaningful, so failure here is fatal.
	stage = time.Now()
	audioPath := filepath.Join(tmpDir, "audio.wav")
	if err := p.media.ExtractAudio(ctx, videoPath, audioPath); err != nil {
		outcome = "error"
		return p.fail(interviewID, "extract audio", err, log)
	}
	segments, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		outcome = "error"
		return p.fail(interviewID, "transcribe", err, log)
	}
	metrics.ObserveStage("transcribe", time.Since(stage))

	transcript := flattenSegments(segments)
	if err := p.repo.UpdateFields(ctx, interviewID, map[string]any{
		"status":     models.StatusAnalyzingText,
		"transcript": transcript,
		"segments":   segments,
	}); err != nil {
		outcome = "error"
		return p.fail(interviewID, "persist transcript", err, log)
	}

	// Stage 3: QA segmentation + per-answer scoring. One answer failing to
	// score never aborts the others; the report only carries successes.
	stage = time.Now()
	qaResults := p.scoreAnswers(transcript, log)
	metrics.ObserveStage("analyze_text", time.Since(stage))
	if err := p.repo.UpdateFields(ctx, interviewID, map[string]any{
		"status":      models.StatusAnalyzingEmotions,
		"qa_analysis": qaResults,
	}); err != nil {
		outcome = "error"
		return p.fail(interviewID, "persist text analysis", err, log)
	}

	// Stage 4: frame sampling + classification + aggregation. Degrades to an
	// empty summary when no face was ever detected or sampling failed.
	stage = time.Now()
	summary := p.analyzeEmotions(ctx, videoPath, tmpDir, log)
	metrics.ObserveStage("analyze_emotions", time.Since(stage))

	// Stage 5: final report.
	if err := p.repo.UpdateFields(ctx, interviewID, map[string]any{
		"status":           models.StatusCompleted,
		"emotion_analysis": summary,
	}); err != nil {
		outcome = "error"
		return p.fail(interviewID, "persist report", err, log)
	}

	log.Info("analysis completed",
		zap.Float64("duration_seconds", info.DurationSeconds),
		zap.Int("qa_pairs", len(qaResults)),
		zap.String("dominant_emotion", summary.DominantEmotion),
	)
	return nil
}

func (p *Pipeline) extractThumbnail(ctx context.Context, interviewID, videoPath string, info media.Info, log *zap.Logger) string {
	if p.opts.MediaDir == "" {
		return ""
	}
	if err := os.MkdirAll(p.opts.MediaDir, 0o755); err != nil {
		log.Warn("thumbnail dir unavailable", zap.Error(err))
		return ""
	}
	thumbPath := filepath.Join(p.opts.MediaDir, interviewID+".jpg")
	if err := p.media.ExtractThumbnail(ctx, videoPath, info.DurationSeconds/2, thumbPath); err != nil {
		log.Warn("thumbnail extraction failed", zap.Error(err))
		return ""
	}
	return thumbPath
}

func (p *Pipeline) scoreAnswers(transcript string, log *zap.Logger) []models.QAAnalysis {
	pairs := qa.Segment(transcript)
	out := make([]models.QAAnalysis, 0, len(pairs))
	for _, pair := range pairs {
		result, err := analysis.Score(pair.Answer)
		if err != nil {
			log.Warn("skipping unscorable answer",
				zap.String("question", pair.Question),
				zap.Error(err),
			)
			continue
		}
		out = append(out, models.QAAnalysis{
			Question: pair.Question,
			Answer:   pair.Answer,
			Analysis: *result,
		})
	}
	return out
}

func (p *Pipeline) analyzeEmotions(ctx context.Context, videoPath, tmpDir string, log *zap.Logger) *models.EmotionSummary {
	framesDir := filepath.Join(tmpDir, "frames")
	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		log.Warn("frames dir unavailable", zap.Error(err))
		return emptySummary()
	}
	paths, err := p.media.SampleFrames(ctx, videoPath, framesDir, p.opts.UnitSeconds)
	if err != nil {
		log.Warn("frame sampling failed", zap.Error(err))
		return emptySummary()
	}

	frames := make([]emotion.Frame, 0, len(paths))
	for _, framePath := range paths {
		frame, err := p.classifier.Classify(ctx, framePath)
		if err != nil {
			// one frame's failure is non-fatal; the instant stays unknown
			log.Debug("frame classification failed", zap.String("frame", framePath), zap.Error(err))
			frame = emotion.Unknown()
		}
		frames = append(frames, frame)
	}

	summary, err := emotion.Summarize(frames, p.opts.UnitSeconds)
	if err != nil {
		if !errors.Is(err, emotion.ErrNoValidFrames) {
			log.Warn("emotion aggregation failed", zap.Error(err))
		}
		return emptySummary()
	}
	return summary
}

// fail persists the terminal error status on a fresh context (the run's
// context may already be canceled) and returns the wrapped cause.
func (p *Pipeline) fail(interviewID, stage string, cause error, log *zap.Logger) error {
	uctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.repo.UpdateFields(uctx, interviewID, map[string]any{"status": models.StatusError}); err != nil {
		log.Error("failed to persist error status", zap.Error(err))
	}
	log.Error("pipeline run failed", zap.String("stage", stage), zap.Error(cause))
	return fmt.Errorf("%s: %w", stage, cause)
}

func (p *Pipeline) cleanup(dir string, log *zap.Logger) {
	if p.opts.CleanupGrace > 0 {
		time.Sleep(p.opts.CleanupGrace)
	}
	if err := os.RemoveAll(dir); err != nil {
		log.Warn("temp cleanup failed", zap.String("dir", dir), zap.Error(err))
	}
}

func flattenSegments(segments []models.TranscriptSegment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func emptySummary() *models.EmotionSummary {
	return &models.EmotionSummary{
		Percentages:     map[string]float64{},
		StressIntervals: []models.StressInterval{},
	}
}
