package repositories

import (
	"context"
	"sort"
	"sync"

	"interviewlens/internal/models"
)

// MemoryRepository is a mutex-guarded in-memory store. It backs tests and
// lets the service run without Mongo in local development.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*models.Interview
}

var _ InterviewRepository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: map[string]*models.Interview{}}
}

func (r *MemoryRepository) Create(ctx context.Context, interview *models.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *interview
	r.items[interview.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *MemoryRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		applyField(it, k, v)
	}
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.Interview, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Interview, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// applyField mirrors the document field names the mongo repository uses.
func applyField(it *models.Interview, key string, value any) {
	switch key {
	case "status":
		switch v := value.(type) {
		case models.Status:
			it.Status = v
		case string:
			it.Status = models.Status(v)
		}
	case "title":
		if v, ok := value.(string); ok {
			it.Title = v
		}
	case "pinned":
		if v, ok := value.(bool); ok {
			it.Pinned = v
		}
	case "duration_seconds":
		if v, ok := value.(float64); ok {
			it.DurationSeconds = v
		}
	case "thumbnail_path":
		if v, ok := value.(string); ok {
			it.ThumbnailPath = v
		}
	case "transcript":
		if v, ok := value.(string); ok {
			it.Transcript = v
		}
	case "segments":
		if v, ok := value.([]models.TranscriptSegment); ok {
			it.Segments = v
		}
	case "qa_analysis":
		if v, ok := value.([]models.QAAnalysis); ok {
			it.QAAnalysis = v
		}
	case "emotion_analysis":
		if v, ok := value.(*models.EmotionSummary); ok {
			it.EmotionAnalysis = v
		}
	}
}
