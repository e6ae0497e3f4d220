package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"interviewlens/internal/models"
)

// Transcriber calls the speech-to-text collaborator with an extracted audio
// file and gets back ordered, timestamped segments. Unreadable or silent
// audio comes back as an empty segment list, not an error.
type Transcriber struct {
	http    *HTTP
	baseURL string
}

func NewTranscriber(h *HTTP, baseURL string) *Transcriber {
	return &Transcriber{http: h, baseURL: baseURL}
}

type transcribeResponse struct {
	Segments []models.TranscriptSegment `json:"segments"`
	Language string                     `json:"language"`
}

func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) ([]models.TranscriptSegment, error) {
	body, contentType, err := multipartFile(audioPath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/transcribe", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := t.http.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("transcriber %s: %s", resp.Status, string(msg))
	}

	var out transcribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("transcriber decode: %w", err)
	}
	return out.Segments, nil
}
