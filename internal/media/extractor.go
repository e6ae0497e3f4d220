// Package media wraps ffmpeg/ffprobe for the audio and frame extraction the
// pipeline needs.
package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// DefaultFrameRate is assumed when the container carries no usable metadata.
const DefaultFrameRate = 30.0

// Info is the probe result for one video file.
type Info struct {
	DurationSeconds float64
	FrameRate       float64
}

type FFmpeg struct {
	ffmpegBin  string
	ffprobeBin string
	log        *zap.Logger
}

func NewFFmpeg(ffmpegBin, ffprobeBin string, logger *zap.Logger) *FFmpeg {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FFmpeg{ffmpegBin: ffmpegBin, ffprobeBin: ffprobeBin, log: logger}
}

// Probe reads duration and frame rate. A missing or corrupt container is an
// error (fatal to the run); a missing frame rate only falls back to the
// default sampling basis.
func (f *FFmpeg) Probe(ctx context.Context, videoPath string) (Info, error) {
	out, err := exec.CommandContext(ctx, f.ffprobeBin,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=avg_frame_rate",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1",
		videoPath,
	).Output()
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe %s: %w", videoPath, err)
	}
	info, err := parseProbeOutput(string(out))
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe %s: %w", videoPath, err)
	}
	if info.FrameRate == DefaultFrameRate {
		f.log.Debug("no frame rate metadata, using default", zap.String("video", videoPath))
	}
	return info, nil
}

func parseProbeOutput(out string) (Info, error) {
	info := Info{FrameRate: DefaultFrameRate}
	durationSeen := false
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		switch key {
		case "duration":
			d, err := strconv.ParseFloat(value, 64)
			if err != nil || d <= 0 {
				return Info{}, fmt.Errorf("bad duration %q", value)
			}
			info.DurationSeconds = d
			durationSeen = true
		case "avg_frame_rate":
			if fps := parseFrameRate(value); fps > 0 {
				info.FrameRate = fps
			}
		}
	}
	if !durationSeen {
		return Info{}, fmt.Errorf("no duration in probe output")
	}
	return info, nil
}

// parseFrameRate handles both ffprobe's fraction form ("30000/1001") and a
// plain float. Returns 0 when the value is unusable.
func parseFrameRate(s string) float64 {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0
		}
		return n / d
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ExtractAudio decodes the video's audio track to mono 16kHz PCM wav, the
// input shape the transcriber expects.
func (f *FFmpeg) ExtractAudio(ctx context.Context, videoPath, outPath string) error {
	return f.run(ctx,
		"-y", "-i", videoPath,
		"-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1",
		outPath,
	)
}

// ExtractThumbnail grabs one representative still at the given offset.
func (f *FFmpeg) ExtractThumbnail(ctx context.Context, videoPath string, atSeconds float64, outPath string) error {
	if atSeconds < 0 {
		atSeconds = 0
	}
	return f.run(ctx,
		"-y", "-ss", fmt.Sprintf("%.2f", atSeconds),
		"-i", videoPath,
		"-frames:v", "1",
		outPath,
	)
}

// SampleFrames writes one still per unitSeconds into outDir and returns the
// frame paths in temporal order. Files are named frame_%06d.jpg, and the
// returned order is by the embedded frame index, never by lexical sort.
func (f *FFmpeg) SampleFrames(ctx context.Context, videoPath, outDir string, unitSeconds int) ([]string, error) {
	if unitSeconds <= 0 {
		unitSeconds = 1
	}
	pattern := filepath.Join(outDir, "frame_%06d.jpg")
	if err := f.run(ctx,
		"-y", "-i", videoPath,
		"-vf", fmt.Sprintf("fps=1/%d", unitSeconds),
		pattern,
	); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "frame_") {
			continue
		}
		paths = append(paths, filepath.Join(outDir, e.Name()))
	}
	sortFramePaths(paths)
	return paths, nil
}

func (f *FFmpeg) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, f.ffmpegBin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", f.ffmpegBin, strings.Join(args, " "), err, tail(string(out), 400))
	}
	return nil
}

var frameIndexPattern = regexp.MustCompile(`(\d+)`)

// sortFramePaths orders paths by the numeric index in the file name, so
// frame_2 sorts before frame_10 even without zero padding.
func sortFramePaths(paths []string) {
	sort.Slice(paths, func(i, j int) bool {
		return frameIndex(paths[i]) < frameIndex(paths[j])
	})
}

func frameIndex(path string) int {
	m := frameIndexPattern.FindString(filepath.Base(path))
	if m == "" {
		return 0
	}
	n, _ := strconv.Atoi(m)
	return n
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
