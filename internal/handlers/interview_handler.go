package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"interviewlens/internal/models"
	"interviewlens/internal/pipeline"
	"interviewlens/internal/queue"
	"interviewlens/internal/repositories"
	"interviewlens/internal/utils"
)

const maxUploadBytes = 512 << 20

// Enqueuer hands accepted uploads to the background workers.
type Enqueuer interface {
	Enqueue(ctx context.Context, job queue.Job) error
}

type InterviewHandler struct {
	repo      repositories.InterviewRepository
	queue     Enqueuer
	uploadDir string
	log       *zap.Logger
}

func NewInterviewHandler(repo repositories.InterviewRepository, q Enqueuer, uploadDir string, logger *zap.Logger) *InterviewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InterviewHandler{repo: repo, queue: q, uploadDir: uploadDir, log: logger}
}

// Upload accepts a video, persists a queued record and enqueues the analysis
// job. It returns 202 immediately; progress is observable by polling the
// record, never through this connection.
func (h *InterviewHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_request", "Expected multipart form with a video file")
		return
	}
	file, header, err := r.FormFile("video")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_request", "Missing video file")
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}

	// identity is assigned exactly once, here
	id := uuid.NewString()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.log.Error("upload dir unavailable", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "internal_error", "Failed to store upload")
		return
	}
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".mp4"
	}
	videoPath := filepath.Join(h.uploadDir, id+ext)
	if err := saveUpload(file, videoPath); err != nil {
		h.log.Error("failed to save upload", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "internal_error", "Failed to store upload")
		return
	}

	record := &models.Interview{
		ID:         id,
		Title:      title,
		Type:       r.FormValue("type"),
		Status:     models.StatusQueued,
		VideoPath:  videoPath,
		QAAnalysis: []models.QAAnalysis{},
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.repo.Create(r.Context(), record); err != nil {
		h.log.Error("failed to create interview record", zap.Error(err))
		os.Remove(videoPath)
		utils.Error(w, http.StatusInternalServerError, "internal_error", "Failed to create interview")
		return
	}

	if err := h.queue.Enqueue(r.Context(), queue.Job{InterviewID: id, VideoPath: videoPath}); err != nil {
		h.log.Error("failed to enqueue analysis job", zap.String("interview_id", id), zap.Error(err))
		_ = h.repo.UpdateFields(r.Context(), id, map[string]any{"status": models.StatusError})
		utils.Error(w, http.StatusInternalServerError, "enqueue_failed", "Failed to queue analysis")
		return
	}

	h.log.Info("interview accepted", zap.String("interview_id", id), zap.String("title", title))
	utils.JSON(w, http.StatusAccepted, models.UploadResponse{ID: id, Status: models.StatusQueued})
}

func saveUpload(src io.Reader, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, src)
	return err
}

func (h *InterviewHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context())
	if err != nil {
		h.log.Error("failed to list interviews", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "internal_error", "Failed to fetch interviews")
		return
	}
	utils.JSON(w, http.StatusOK, models.InterviewsResponse{Total: len(items), Items: items})
}

func (h *InterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, ok := h.fetch(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, record)
}

// GetReport serves the synthesized wire-contract report for any record,
// whatever stage it has reached.
func (h *InterviewHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	record, ok := h.fetch(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, pipeline.ReportFrom(record))
}

type pinRequest struct {
	Pinned bool `json:"pinned"`
}

func (h *InterviewHandler) Pin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid_request", "Invalid request payload")
		return
	}
	if err := h.repo.UpdateFields(r.Context(), id, map[string]any{"pinned": req.Pinned}); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "interview_not_found", "Interview not found")
			return
		}
		h.log.Error("failed to update pinned flag", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "internal_error", "Failed to update interview")
		return
	}
	record, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "internal_error", "Failed to fetch interview")
		return
	}
	utils.JSON(w, http.StatusOK, record)
}

// Delete is the administrative removal path; the pipeline itself never
// deletes records.
func (h *InterviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "interview_not_found", "Interview not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "internal_error", "Failed to fetch interview")
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.log.Error("failed to delete interview", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "internal_error", "Failed to delete interview")
		return
	}
	if record.VideoPath != "" {
		if err := os.Remove(record.VideoPath); err != nil && !os.IsNotExist(err) {
			h.log.Warn("failed to remove video file", zap.String("path", record.VideoPath), zap.Error(err))
		}
	}
	if record.ThumbnailPath != "" {
		_ = os.Remove(record.ThumbnailPath)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InterviewHandler) fetch(w http.ResponseWriter, r *http.Request) (*models.Interview, bool) {
	id := chi.URLParam(r, "id")
	record, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "interview_not_found", "Interview not found")
			return nil, false
		}
		h.log.Error("failed to fetch interview", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "internal_error", "Failed to fetch interview")
		return nil, false
	}
	return record, true
}
