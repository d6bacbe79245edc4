package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
	"github.com/nagmanijha/ResumeRev.ai/internal/repositories"
)

// Worker processes queued ranking batches in the background.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueBatch(batchID uuid.UUID)
}

type worker struct {
	batchRepo       repositories.BatchRepository
	analyzer        AnalyzerService
	storage         StorageService
	jobQueue        chan uuid.UUID
	concurrency     int
	itemParallelism int
	pollInterval    time.Duration
	wg              sync.WaitGroup
	stopChan        chan struct{}
}

func NewWorker(
	batchRepo repositories.BatchRepository,
	analyzer AnalyzerService,
	storage StorageService,
	concurrency int,
	itemParallelism int,
	pollInterval time.Duration,
) Worker {
	return &worker{
		batchRepo:       batchRepo,
		analyzer:        analyzer,
		storage:         storage,
		jobQueue:        make(chan uuid.UUID, 100),
		concurrency:     concurrency,
		itemParallelism: itemParallelism,
		pollInterval:    pollInterval,
		stopChan:        make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting batch worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingBatches(ctx)

	log.Println("✅ Batch worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping batch worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Batch worker stopped")
}

// EnqueueBatch implements Worker.
func (w *worker) EnqueueBatch(batchID uuid.UUID) {
	select {
	case w.jobQueue <- batchID:
		log.Printf("📥 Batch %s enqueued\n", batchID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue batch %s\n", batchID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing batches\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case batchID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing batch %s\n", workerID, batchID)
			if err := w.processBatch(ctx, batchID); err != nil {
				log.Printf("❌ Worker #%d failed to process batch %s: %v\n", workerID, batchID, err)
			} else {
				log.Printf("✅ Worker #%d completed batch %s\n", workerID, batchID)
			}
		}
	}
}

// processBatch scores every item with bounded parallelism, then ranks
// the successful ones by total score.
func (w *worker) processBatch(ctx context.Context, batchID uuid.UUID) error {
	batch, err := w.batchRepo.FindByID(batchID)
	if err != nil {
		return err
	}

	// The poller and the enqueue at upload time can both deliver the
	// same batch; whoever flips the status first wins.
	if batch.Status != models.BatchQueued {
		log.Printf("⏭️ Batch %s already %s, skipping\n", batchID, batch.Status)
		return nil
	}

	if err := w.batchRepo.UpdateStatus(batchID, models.BatchProcessing); err != nil {
		return err
	}

	sem := make(chan struct{}, w.itemParallelism)
	var itemWg sync.WaitGroup

	for i := range batch.Items {
		itemWg.Add(1)
		sem <- struct{}{}

		go func(item *models.BatchItem) {
			defer itemWg.Done()
			defer func() { <-sem }()
			w.processItem(ctx, item, batch.JobDescription)
		}(&batch.Items[i])
	}
	itemWg.Wait()

	w.rankItems(batch.Items)

	succeeded := 0
	for i := range batch.Items {
		if batch.Items[i].ErrorMessage == "" {
			succeeded++
		}
		if err := w.batchRepo.UpdateItem(&batch.Items[i]); err != nil {
			log.Printf("⚠️ Failed to persist batch item %s: %v\n", batch.Items[i].ID, err)
		}
	}

	if succeeded == 0 && len(batch.Items) > 0 {
		return w.batchRepo.UpdateError(batchID, "every resume in the batch failed to process")
	}

	return w.batchRepo.UpdateStatus(batchID, models.BatchCompleted)
}

func (w *worker) processItem(ctx context.Context, item *models.BatchItem, jobDescription string) {
	content, err := w.storage.ReadFile(item.FilePath)
	if err != nil {
		w.failItem(item, err)
		return
	}

	_, score, err := w.analyzer.ScoreResume(ctx, content, item.Filename, jobDescription)
	if err != nil {
		w.failItem(item, err)
		return
	}

	missing := score.SkillGap.Missing
	if len(missing) > 5 {
		missing = missing[:5]
	}
	missingJSON, _ := json.Marshal(missing)

	item.TotalScore = score.TotalScore
	item.SkillScore = score.Breakdown.SkillMatch
	item.ExpScore = score.Breakdown.ExperienceMatch
	item.MissingSkills = missingJSON
	item.ErrorMessage = ""
}

func (w *worker) failItem(item *models.BatchItem, err error) {
	log.Printf("❌ Batch item %s (%s) failed: %v\n", item.ID, item.Filename, err)
	item.ErrorMessage = err.Error()
	item.TotalScore = 0
}

// rankItems orders failed items last, everything else by score.
func (w *worker) rankItems(items []models.BatchItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if (items[i].ErrorMessage == "") != (items[j].ErrorMessage == "") {
			return items[i].ErrorMessage == ""
		}
		return items[i].TotalScore > items[j].TotalScore
	})
	for i := range items {
		items[i].Rank = i + 1
	}
}

func (w *worker) pollPendingBatches(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	log.Println("🔄 Starting pending batch poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending batch poller stopped")
			return
		case <-ticker.C:
			pending, err := w.batchRepo.FindPendingBatches(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending batches: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d pending batches\n", len(pending))
			}

			for _, batch := range pending {
				w.EnqueueBatch(batch.ID)
			}
		}
	}
}
