package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewlens/internal/emotion"
	"interviewlens/internal/media"
	"interviewlens/internal/models"
	"interviewlens/internal/repositories"
)

type fakeTranscriber struct {
	segments []models.TranscriptSegment
	err      error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) ([]models.TranscriptSegment, error) {
	return f.segments, f.err
}

type fakeClassifier struct {
	frames []emotion.Frame
	err    error
	next   int
}

func (f *fakeClassifier) Classify(ctx context.Context, imagePath string) (emotion.Frame, error) {
	if f.err != nil {
		return emotion.Unknown(), f.err
	}
	if f.next >= len(f.frames) {
		return emotion.Unknown(), nil
	}
	frame := f.frames[f.next]
	f.next++
	return frame, nil
}

type fakeMedia struct {
	info       media.Info
	probeErr   error
	audioErr   error
	frameCount int
	sampleErr  error
}

func (f *fakeMedia) Probe(ctx context.Context, videoPath string) (media.Info, error) {
	return f.info, f.probeErr
}

func (f *fakeMedia) ExtractAudio(ctx context.Context, videoPath, outPath string) error {
	return f.audioErr
}

func (f *fakeMedia) ExtractThumbnail(ctx context.Context, videoPath string, atSeconds float64, outPath string) error {
	return nil
}

func (f *fakeMedia) SampleFrames(ctx context.Context, videoPath, outDir string, unitSeconds int) ([]string, error) {
	if f.sampleErr != nil {
		return nil, f.sampleErr
	}
	paths := make([]string, f.frameCount)
	for i := range paths {
		paths[i] = filepath.Join(outDir, fmt.Sprintf("frame_%06d.jpg", i+1))
	}
	return paths, nil
}

// recordingRepo captures the order of persisted status transitions.
type recordingRepo struct {
	*repositories.MemoryRepository
	statuses []models.Status
}

func (r *recordingRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if s, ok := fields["status"].(models.Status); ok {
		r.statuses = append(r.statuses, s)
	}
	return r.MemoryRepository.UpdateFields(ctx, id, fields)
}

func newRecordingRepo(t *testing.T, id string) *recordingRepo {
	t.Helper()
	repo := &recordingRepo{MemoryRepository: repositories.NewMemoryRepository()}
	require.NoError(t, repo.Create(context.Background(), &models.Interview{
		ID:     id,
		Title:  "demo",
		Status: models.StatusQueued,
	}))
	return repo
}

func sampleSegments() []models.TranscriptSegment {
	return []models.TranscriptSegment{
		{Start: 0, End: 4.2, Text: "How did you deploy the service?"},
		{Start: 4.2, End: 9.8, Text: "I built it using a database and an API, then I optimized it."},
	}
}

func TestRunSuccess(t *testing.T) {
	workDir := t.TempDir()
	repo := newRecordingRepo(t, "iv1")
	p := New(repo,
		&fakeTranscriber{segments: sampleSegments()},
		&fakeClassifier{frames: []emotion.Frame{
			emotion.Known(emotion.Happy),
			emotion.Known(emotion.Happy),
			emotion.Known(emotion.Sad),
		}},
		&fakeMedia{info: media.Info{DurationSeconds: 10, FrameRate: 30}, frameCount: 3},
		Options{WorkDir: workDir, UnitSeconds: 1},
		nil,
	)

	require.NoError(t, p.Run(context.Background(), "iv1", "/videos/iv1.mp4"))

	rec, err := repo.GetByID(context.Background(), "iv1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, rec.Status)
	assert.Equal(t, 10.0, rec.DurationSeconds)
	assert.Equal(t, "How did you deploy the service? I built it using a database and an API, then I optimized it.", rec.Transcript)
	assert.Len(t, rec.Segments, 2)
	require.Len(t, rec.QAAnalysis, 1)
	assert.Equal(t, "How did you deploy the service?", rec.QAAnalysis[0].Question)
	require.NotNil(t, rec.EmotionAnalysis)
	assert.Equal(t, "happy", rec.EmotionAnalysis.DominantEmotion)

	assert.Equal(t, []models.Status{
		models.StatusTranscribing,
		models.StatusAnalyzingText,
		models.StatusAnalyzingEmotions,
		models.StatusCompleted,
	}, repo.statuses)

	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "per-run temp dir removed after the run")
}

func TestRunPersistsThumbnailPath(t *testing.T) {
	mediaDir := t.TempDir()
	repo := newRecordingRepo(t, "iv2")
	p := New(repo,
		&fakeTranscriber{segments: sampleSegments()},
		&fakeClassifier{},
		&fakeMedia{info: media.Info{DurationSeconds: 8}},
		Options{WorkDir: t.TempDir(), MediaDir: mediaDir},
		nil,
	)

	require.NoError(t, p.Run(context.Background(), "iv2", "/videos/iv2.mp4"))

	rec, err := repo.GetByID(context.Background(), "iv2")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(mediaDir, "iv2.jpg"), rec.ThumbnailPath)
}

func TestRunProbeFailureIsFatal(t *testing.T) {
	repo := newRecordingRepo(t, "iv3")
	p := New(repo,
		&fakeTranscriber{},
		&fakeClassifier{},
		&fakeMedia{probeErr: errors.New("corrupt container")},
		Options{WorkDir: t.TempDir()},
		nil,
	)

	err := p.Run(context.Background(), "iv3", "/videos/iv3.mp4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe")

	rec, getErr := repo.GetByID(context.Background(), "iv3")
	require.NoError(t, getErr)
	assert.Equal(t, models.StatusError, rec.Status)
	assert.Empty(t, rec.Transcript)
	assert.Equal(t, []models.Status{models.StatusError}, repo.statuses)
}

func TestRunTranscriptionFailureIsFatal(t *testing.T) {
	workDir := t.TempDir()
	repo := newRecordingRepo(t, "iv4")
	p := New(repo,
		&fakeTranscriber{err: errors.New("asr unavailable")},
		&fakeClassifier{},
		&fakeMedia{info: media.Info{DurationSeconds: 10}},
		Options{WorkDir: workDir},
		nil,
	)

	err := p.Run(context.Background(), "iv4", "/videos/iv4.mp4")
	require.Error(t, err)

	rec, getErr := repo.GetByID(context.Background(), "iv4")
	require.NoError(t, getErr)
	assert.Equal(t, models.StatusError, rec.Status)
	assert.Empty(t, rec.Transcript)
	assert.Nil(t, rec.EmotionAnalysis)
	assert.Equal(t, []models.Status{models.StatusTranscribing, models.StatusError}, repo.statuses)

	entries, readErr := os.ReadDir(workDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "temp dir removed even on failure")
}

func TestRunDegradesWhenNoFaceDetected(t *testing.T) {
	repo := newRecordingRepo(t, "iv5")
	p := New(repo,
		&fakeTranscriber{segments: sampleSegments()},
		&fakeClassifier{err: errors.New("no face detected")},
		&fakeMedia{info: media.Info{DurationSeconds: 10}, frameCount: 4},
		Options{WorkDir: t.TempDir()},
		nil,
	)

	require.NoError(t, p.Run(context.Background(), "iv5", "/videos/iv5.mp4"))

	rec, err := repo.GetByID(context.Background(), "iv5")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, rec.Status)
	require.NotNil(t, rec.EmotionAnalysis)
	assert.Empty(t, rec.EmotionAnalysis.DominantEmotion)
	assert.Empty(t, rec.EmotionAnalysis.Percentages)
	assert.NotNil(t, rec.EmotionAnalysis.StressIntervals)
}

func TestRunDegradesWhenSamplingFails(t *testing.T) {
	repo := newRecordingRepo(t, "iv6")
	p := New(repo,
		&fakeTranscriber{segments: sampleSegments()},
		&fakeClassifier{},
		&fakeMedia{info: media.Info{DurationSeconds: 10}, sampleErr: errors.New("decoder crashed")},
		Options{WorkDir: t.TempDir()},
		nil,
	)

	require.NoError(t, p.Run(context.Background(), "iv6", "/videos/iv6.mp4"))

	rec, err := repo.GetByID(context.Background(), "iv6")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, rec.Status)
	assert.Empty(t, rec.EmotionAnalysis.Percentages)
}

func TestFlattenSegments(t *testing.T) {
	got := flattenSegments([]models.TranscriptSegment{
		{Text: "  Hello there. "},
		{Text: "   "},
		{Text: "Second part."},
	})
	assert.Equal(t, "Hello there. Second part.", got)

	assert.Empty(t, flattenSegments(nil))
}
