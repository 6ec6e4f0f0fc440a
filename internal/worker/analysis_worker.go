package worker

import (
	"context"
	"log"
	"time"

	"formforge/internal/model"
	"formforge/internal/repository"
	"formforge/internal/service"
)

type analysisJob struct {
	response *model.ResponseRecord
	form     *model.FormDefinition
}

// AnalysisWorker runs per-response analysis off the submission path. Jobs
// are best effort: a full queue drops, a failed job logs, nothing retries.
type AnalysisWorker struct {
	analyzer     *service.AnalyzerService
	responseRepo repository.ResponseRepo
	jobs         chan analysisJob
	done         chan struct{}
	timeout      time.Duration
}

// NewAnalysisWorker creates a worker with the given queue capacity.
func NewAnalysisWorker(analyzer *service.AnalyzerService, responseRepo repository.ResponseRepo, queueSize int) *AnalysisWorker {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &AnalysisWorker{
		analyzer:     analyzer,
		responseRepo: responseRepo,
		jobs:         make(chan analysisJob, queueSize),
		done:         make(chan struct{}),
		timeout:      30 * time.Second,
	}
}

// Start launches the worker loop.
func (w *AnalysisWorker) Start() {
	go w.run()
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (w *AnalysisWorker) Stop() {
	close(w.jobs)
	<-w.done
}

// Enqueue schedules analysis for a stored response. Never blocks; when the
// queue is full the job is dropped and logged.
func (w *AnalysisWorker) Enqueue(rec *model.ResponseRecord, form *model.FormDefinition) {
	select {
	case w.jobs <- analysisJob{response: rec, form: form}:
	default:
		log.Printf("analysis worker: queue full, dropping response %s", rec.ID)
	}
}

func (w *AnalysisWorker) run() {
	defer close(w.done)
	for job := range w.jobs {
		w.process(job)
	}
}

func (w *AnalysisWorker) process(job analysisJob) {
	// Detached from the request context: the submission already returned.
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	result := w.analyzer.AnalyzeResponse(ctx, job.response, job.form)
	if err := w.responseRepo.AttachAnalysis(ctx, job.response.ID, result); err != nil {
		log.Printf("analysis worker: attach failed for response %s: %v", job.response.ID, err)
	}
}
