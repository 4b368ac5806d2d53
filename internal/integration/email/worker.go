package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
	"github.com/smartbiz/backend/internal/integration/email/templates"
)

// Worker drains the email queue and hands rendered messages to the sender.
type Worker struct {
	queue         adapter.EmailQueueRepository
	sender        adapter.EmailSender
	renderer      *templates.Renderer
	pollInterval  time.Duration
	batchSize     int
	retentionDays int
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// RetentionDays controls purging of sent jobs. Zero disables purging.
	RetentionDays int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval:  5 * time.Second,
		BatchSize:     10,
		RetentionDays: 30,
	}
}

// BatchResult counts the outcome of one pass over the queue.
type BatchResult struct {
	Sent    int
	Retried int
	Failed  int
}

// Total returns the number of jobs touched in the pass.
func (r BatchResult) Total() int {
	return r.Sent + r.Retried + r.Failed
}

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultWorkerConfig().PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultWorkerConfig().BatchSize
	}
	return &Worker{
		queue:         queue,
		sender:        sender,
		renderer:      renderer,
		pollInterval:  config.PollInterval,
		batchSize:     config.BatchSize,
		retentionDays: config.RetentionDays,
	}
}

// Start runs the polling loop until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.purgeSent(ctx)
	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// ProcessNow runs a single pass over the queue.
func (w *Worker) ProcessNow(ctx context.Context) BatchResult {
	return w.processBatch(ctx)
}

func (w *Worker) processBatch(ctx context.Context) BatchResult {
	var result BatchResult

	jobs, err := w.queue.GetPendingJobs(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending email jobs", "error", err)
		return result
	}
	if len(jobs) == 0 {
		return result
	}

	slog.Debug("Processing email batch", "count", len(jobs))

	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		switch w.processJob(ctx, job) {
		case entity.EmailStatusSent:
			result.Sent++
		case entity.EmailStatusPending:
			result.Retried++
		case entity.EmailStatusFailed:
			result.Failed++
		}
	}

	return result
}

// processJob returns the status the job ended in.
func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) entity.EmailStatus {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.Template,
	)

	job.BeginAttempt()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as processing", "error", err)
		return job.Status
	}

	html, text, err := w.renderTemplate(job)
	if err != nil {
		logger.Error("Failed to render email template", "error", err)
		return w.handleFailure(ctx, job, err, true)
	}

	sent, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.To,
		Name:    job.ToName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Error("Failed to send email", "error", err)
		return w.handleFailure(ctx, job, err, domainerror.IsPermanentEmailError(err))
	}

	job.MarkDelivered(sent.MessageID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return job.Status
	}

	logger.Info("Email sent", "message_id", sent.MessageID)
	return job.Status
}

func (w *Worker) renderTemplate(job *entity.EmailJob) (html string, text string, err error) {
	var data any
	switch job.Template {
	case entity.TemplatePasswordReset:
		data = templates.PasswordResetData{
			AppName:   job.Vars["app_name"],
			UserName:  job.Vars["user_name"],
			Token:     job.Vars["token"],
			ExpiresIn: job.Vars["expires_in"],
		}
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeUnknownTemplate,
			"unknown template "+string(job.Template),
			domainerror.ErrUnknownTemplate,
		)
	}

	return w.renderer.Render(string(job.Template), data)
}

func (w *Worker) handleFailure(ctx context.Context, job *entity.EmailJob, err error, permanent bool) entity.EmailStatus {
	job.RecordFailure(err, permanent)

	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		slog.Error("Failed to update job after failure",
			"job_id", job.ID,
			"error", updateErr,
		)
	}

	if job.Status == entity.EmailStatusFailed {
		slog.Warn("Email job permanently failed",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
	} else {
		slog.Info("Email job scheduled for retry",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"scheduled_at", job.ScheduledAt,
		)
	}

	return job.Status
}

func (w *Worker) purgeSent(ctx context.Context) {
	if w.retentionDays <= 0 {
		return
	}
	deleted, err := w.queue.DeleteOldSentJobs(ctx, w.retentionDays)
	if err != nil {
		slog.Error("Failed to purge sent email jobs", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("Purged sent email jobs", "count", deleted)
	}
}
