package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/interview-evaluator/internal/models"
	"alfredoptarigan/interview-evaluator/internal/repositories"
)

type fakeGemini struct {
	mu          sync.Mutex
	reply       string
	err         error
	prompts     []string
	hadDeadline bool
	embedCalls  int
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	_, f.hadDeadline = ctx.Deadline()
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embedCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []float32{float32(len(text)), 1, 0}, nil
}

type fakeEvalRepo struct {
	mu      sync.Mutex
	evals   map[uuid.UUID]*models.Evaluation
	created int
	err     error
}

func newFakeEvalRepo() *fakeEvalRepo {
	return &fakeEvalRepo{evals: map[uuid.UUID]*models.Evaluation{}}
}

func (r *fakeEvalRepo) Create(eval *models.Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	cp := *eval
	r.evals[eval.ID] = &cp
	r.created++
	return nil
}

func (r *fakeEvalRepo) FindByID(id uuid.UUID) (*models.Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.evals[id]
	if !ok {
		return nil, fmt.Errorf("evaluation %s: %w", id, repositories.ErrNotFound)
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEvalRepo) UpdateIndexStatus(id uuid.UUID, status models.IndexStatus, errorMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.evals[id]
	if !ok {
		return fmt.Errorf("evaluation %s: %w", id, repositories.ErrNotFound)
	}
	e.IndexStatus = status
	if errorMsg != "" {
		e.IndexError = &errorMsg
	} else {
		e.IndexError = nil
	}
	return nil
}

func (r *fakeEvalRepo) FindPendingIndex(limit int) ([]models.Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Evaluation
	for _, e := range r.evals {
		if e.IndexStatus == models.IndexPending && len(out) < limit {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEvalRepo) status(id uuid.UUID) models.IndexStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.evals[id]; ok {
		return e.IndexStatus
	}
	return ""
}

type fakeDocRepo struct {
	docs []*models.ReferenceDocument
	err  error
}

func (r *fakeDocRepo) Create(doc *models.ReferenceDocument) error {
	if r.err != nil {
		return r.err
	}
	r.docs = append(r.docs, doc)
	return nil
}

func (r *fakeDocRepo) FindByID(id uuid.UUID) (*models.ReferenceDocument, error) {
	for _, d := range r.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeDocRepo) FindByPath(path string) (*models.ReferenceDocument, error) {
	for _, d := range r.docs {
		if d.FilePath == path {
			return d, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeIndex struct {
	mu      sync.Mutex
	points  map[string][]AnswerChunk
	sources map[string]string
	err     error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{points: map[string][]AnswerChunk{}, sources: map[string]string{}}
}

func (f *fakeIndex) InitCollection(ctx context.Context) error { return nil }

func (f *fakeIndex) UpsertChunks(ctx context.Context, sourceID, source, question string, chunks []AnswerChunk) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.points[sourceID] = chunks
	f.sources[sourceID] = source
	return nil
}

func (f *fakeIndex) SearchSimilar(ctx context.Context, queryEmbedding []float32, excludeSourceID string, limit int) ([]SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []SearchResult
	for id, chunks := range f.points {
		if id == excludeSourceID {
			continue
		}
		for _, c := range chunks {
			if len(out) >= limit {
				return out, nil
			}
			out = append(out, SearchResult{SourceID: id, Source: f.sources[id], Text: c.Text, Score: 0.9})
		}
	}
	return out, nil
}

func (f *fakeIndex) DeleteSource(ctx context.Context, sourceID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.points, sourceID)
	return nil
}

func (f *fakeIndex) sourceCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.points)
}

func (f *fakeIndex) chunkCount(sourceID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.points[sourceID])
}

type fakeWorker struct {
	enqueued []uuid.UUID
}

func (w *fakeWorker) Start(ctx context.Context) {}
func (w *fakeWorker) Stop()                     {}
func (w *fakeWorker) EnqueueJob(id uuid.UUID) bool {
	w.enqueued = append(w.enqueued, id)
	return true
}

type fixedSentiment float64

func (s fixedSentiment) Polarity(string) float64 { return float64(s) }
