package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-evaluator/internal/repositories"
)

// Worker indexes stored answers in the background.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(evalID uuid.UUID) bool
}

type worker struct {
	evalRepo     repositories.EvaluationRepository
	indexer      AnswerIndexer
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
}

func NewWorker(
	evalRepo repositories.EvaluationRepository,
	indexer AnswerIndexer,
	concurrency int,
	pollInterval time.Duration,
) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}
	return &worker{
		evalRepo:     evalRepo,
		indexer:      indexer,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting index worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping index worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Index worker stopped")
	})
}

// EnqueueJob implements Worker. It never blocks the caller: when the queue is
// full or the worker is stopping the job is left for the poller.
func (w *worker) EnqueueJob(evalID uuid.UUID) bool {
	select {
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue evaluation %s\n", evalID)
		return false
	default:
	}

	select {
	case w.jobQueue <- evalID:
		log.Printf("📥 Evaluation %s enqueued for indexing\n", evalID)
		return true
	default:
		log.Printf("⚠️  Index queue full, evaluation %s left for the poller\n", evalID)
		return false
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			return
		case evalID := <-w.jobQueue:
			if err := w.indexer.IndexEvaluation(ctx, evalID); err != nil {
				log.Printf("❌ Worker #%d failed to index %s: %v\n", workerID, evalID, err)
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending index poller stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending, err := w.evalRepo.FindPendingIndex(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch evaluations pending indexing: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d evaluations pending indexing\n", len(pending))
			}

			for _, eval := range pending {
				if !w.EnqueueJob(eval.ID) {
					break
				}
			}
		}
	}
}
