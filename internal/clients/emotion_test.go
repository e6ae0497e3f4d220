package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewlens/internal/emotion"
)

func TestClassify(t *testing.T) {
	imagePath := writeTempFile(t, "frame_000001.jpg", "fake jpeg bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/classify", r.URL.Path)
		w.Write([]byte(`{"emotion":"happy","confidence":0.92}`))
	}))
	defer srv.Close()

	c := NewClassifier(NewHTTP(5*time.Second), srv.URL)
	frame, err := c.Classify(context.Background(), imagePath)
	require.NoError(t, err)

	label, known := frame.Label()
	assert.True(t, known)
	assert.Equal(t, emotion.Happy, label)
}

func TestClassifyNoFace(t *testing.T) {
	imagePath := writeTempFile(t, "frame.jpg", "fake jpeg bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClassifier(NewHTTP(5*time.Second), srv.URL)
	frame, err := c.Classify(context.Background(), imagePath)
	require.NoError(t, err)

	_, known := frame.Label()
	assert.False(t, known)
}

func TestClassifyUnrecognizedLabel(t *testing.T) {
	imagePath := writeTempFile(t, "frame.jpg", "fake jpeg bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"emotion":"confused","confidence":0.5}`))
	}))
	defer srv.Close()

	c := NewClassifier(NewHTTP(5*time.Second), srv.URL)
	frame, err := c.Classify(context.Background(), imagePath)
	require.NoError(t, err, "a label outside the set is not an error")

	_, known := frame.Label()
	assert.False(t, known)
}

func TestClassifyServerError(t *testing.T) {
	imagePath := writeTempFile(t, "frame.jpg", "fake jpeg bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gpu exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClassifier(NewHTTP(5*time.Second), srv.URL)
	_, err := c.Classify(context.Background(), imagePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gpu exploded")
}
