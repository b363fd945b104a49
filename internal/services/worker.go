package services

import (
	"context"
	"log"
	"sync"

	"careerpath/careerpath-api/internal/models"
)

// IndexWorker runs profile indexing off the request path. Indexing is
// best-effort: a failed job is logged and dropped, the parse result the
// user already received is unaffected.
type IndexWorker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueProfile(resumeID string, profile *models.ResumeProfile)
}

type indexJob struct {
	ResumeID string
	Profile  *models.ResumeProfile
}

type indexWorker struct {
	indexer     ProfileIndexer
	jobQueue    chan indexJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewIndexWorker(indexer ProfileIndexer, concurrency int) IndexWorker {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &indexWorker{
		indexer:     indexer,
		jobQueue:    make(chan indexJob, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements IndexWorker.
func (w *indexWorker) Start(ctx context.Context) {
	log.Printf("🚀 Starting index worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements IndexWorker. Jobs already queued are drained before the
// workers exit.
func (w *indexWorker) Stop() {
	log.Println("🛑 Stopping index worker...")
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
	log.Println("✅ Index worker stopped")
}

// EnqueueProfile implements IndexWorker.
func (w *indexWorker) EnqueueProfile(resumeID string, profile *models.ResumeProfile) {
	select {
	case w.jobQueue <- indexJob{ResumeID: resumeID, Profile: profile}:
		log.Printf("📥 Profile %s queued for indexing\n", resumeID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot queue profile %s\n", resumeID)
	default:
		// Queue full: indexing is best-effort, drop rather than block
		// the upload request.
		log.Printf("⚠️  Index queue full, dropping profile %s\n", resumeID)
	}
}

func (w *indexWorker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			// Drain whatever was queued before the stop signal.
			for {
				select {
				case job := <-w.jobQueue:
					w.runJob(ctx, workerID, job)
				default:
					log.Printf("👷 Index worker #%d stopped\n", workerID)
					return
				}
			}
		case job := <-w.jobQueue:
			w.runJob(ctx, workerID, job)
		}
	}
}

func (w *indexWorker) runJob(ctx context.Context, workerID int, job indexJob) {
	if err := w.indexer.IndexProfile(ctx, job.ResumeID, job.Profile); err != nil {
		log.Printf("❌ Worker #%d failed to index profile %s: %v\n", workerID, job.ResumeID, err)
	} else {
		log.Printf("✅ Worker #%d indexed profile %s\n", workerID, job.ResumeID)
	}
}
