package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"interviewlens/internal/emotion"
)

// Classifier sends one still image to the facial-emotion collaborator and
// maps its best-guess label into the closed label set. "No face in frame"
// (204, empty label, or a label outside the set) maps to an unknown frame.
type Classifier struct {
	http    *HTTP
	baseURL string
}

func NewClassifier(h *HTTP, baseURL string) *Classifier {
	return &Classifier{http: h, baseURL: baseURL}
}

type classifyResponse struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

func (c *Classifier) Classify(ctx context.Context, imagePath string) (emotion.Frame, error) {
	body, contentType, err := multipartFile(imagePath)
	if err != nil {
		return emotion.Unknown(), err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", body)
	if err != nil {
		return emotion.Unknown(), err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.c.Do(req)
	if err != nil {
		return emotion.Unknown(), err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return emotion.Unknown(), nil
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return emotion.Unknown(), fmt.Errorf("classifier %s: %s", resp.Status, string(msg))
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return emotion.Unknown(), fmt.Errorf("classifier decode: %w", err)
	}

	label, ok := emotion.ParseLabel(out.Emotion)
	if !ok {
		return emotion.Unknown(), nil
	}
	return emotion.Known(label), nil
}
