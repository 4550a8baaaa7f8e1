package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"talentflow/recruitment-api/internal/repositories"
)

// JobIndexer keeps the qdrant requirement index in sync with job postings.
// Indexing is asynchronous: job create/update handlers enqueue the job id and
// return immediately; a failed index never blocks the admin request.
type JobIndexer interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(jobID uuid.UUID)
}

type jobIndexer struct {
	jobRepo       repositories.JobRepository
	geminiService GeminiService
	qdrantService QdrantService
	chunker       TextChunker
	jobQueue      chan uuid.UUID
	concurrency   int
	maxRetries    int
	wg            sync.WaitGroup
	stopChan      chan struct{}
	stopOnce      sync.Once
}

func NewJobIndexer(
	jobRepo repositories.JobRepository,
	geminiService GeminiService,
	qdrantService QdrantService,
	concurrency int,
	maxRetries int,
) JobIndexer {
	return &jobIndexer{
		jobRepo:       jobRepo,
		geminiService: geminiService,
		qdrantService: qdrantService,
		chunker:       NewTextChunker(),
		jobQueue:      make(chan uuid.UUID, 100),
		concurrency:   concurrency,
		maxRetries:    maxRetries,
		stopChan:      make(chan struct{}),
	}
}

// Start implements JobIndexer.
func (w *jobIndexer) Start(ctx context.Context) {
	log.Printf("🚀 Starting job indexer with %d workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements JobIndexer.
func (w *jobIndexer) Stop() {
	log.Println("🛑 Stopping job indexer...")
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
	log.Println("✅ Job indexer stopped")
}

// EnqueueJob implements JobIndexer.
func (w *jobIndexer) EnqueueJob(jobID uuid.UUID) {
	select {
	case w.jobQueue <- jobID:
		log.Printf("📥 Job %s queued for indexing\n", jobID)
	case <-w.stopChan:
		log.Printf("⚠️  Indexer stopped, cannot queue job %s\n", jobID)
	}
}

func (w *jobIndexer) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Indexer worker #%d stopped\n", workerID)
			return
		case jobID := <-w.jobQueue:
			if err := w.indexJobWithRetry(ctx, jobID); err != nil {
				log.Printf("❌ Indexer worker #%d failed to index job %s: %v\n", workerID, jobID, err)
			} else {
				log.Printf("✅ Indexer worker #%d indexed job %s\n", workerID, jobID)
			}
		}
	}
}

func (w *jobIndexer) indexJobWithRetry(ctx context.Context, jobID uuid.UUID) error {
	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err := w.indexJob(ctx, jobID); err != nil {
			lastErr = err
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled: %w", ctx.Err())
			case <-w.stopChan:
				return lastErr
			default:
			}
			continue
		}
		return nil
	}
	return fmt.Errorf("failed after %d attempts: %w", w.maxRetries, lastErr)
}

func (w *jobIndexer) indexJob(ctx context.Context, jobID uuid.UUID) error {
	job, err := w.jobRepo.FindByID(jobID)
	if err != nil {
		return fmt.Errorf("failed to load job for indexing: %w", err)
	}

	var parts []string
	if job.Description != nil && *job.Description != "" {
		parts = append(parts, *job.Description)
	}
	if job.Requirements != nil && *job.Requirements != "" {
		parts = append(parts, *job.Requirements)
	}
	if len(parts) == 0 {
		return nil
	}

	// Drop stale chunks before writing the new set.
	if err := w.qdrantService.DeleteJob(ctx, jobID.String()); err != nil {
		return fmt.Errorf("failed to clear stale chunks: %w", err)
	}

	text := CleanText(fmt.Sprintf("%s\n\n%s", job.Title, joinParts(parts)))
	chunks := w.chunker.ChunkText(text, 800, 100)

	for i, chunk := range chunks {
		embedding, err := w.geminiService.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		if err := w.qdrantService.UpsertChunk(ctx, jobID.String(), i, chunk, embedding); err != nil {
			return fmt.Errorf("failed to upsert chunk %d: %w", i, err)
		}
	}

	return nil
}

func joinParts(parts []string) string {
	switch len(parts) {
	case 1:
		return parts[0]
	default:
		return parts[0] + "\n\n" + parts[1]
	}
}
