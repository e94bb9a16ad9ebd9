package tasks

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/portfoliopro/folio/internal/config"
	"github.com/portfoliopro/folio/internal/log"
	"github.com/portfoliopro/folio/internal/repo"
	"github.com/portfoliopro/folio/utils/ptr"
)

// Enqueuer is the follow-up task surface handlers use. Satisfied by
// async.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReleaseNotePayload is the broadcast task payload.
type ReleaseNotePayload struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailPayload is the per-batch delivery payload.
type EmailPayload struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
}

// BroadcastSender fans a release note out to every active tenant. Tenants
// are paged in batches and each batch becomes one delivery task, so a
// failing address only retries its own batch.
type BroadcastSender struct {
	directory repo.Directory
	enqueuer  Enqueuer
	cfg       config.Broadcast
}

func NewBroadcastSender(directory repo.Directory, enqueuer Enqueuer, cfg config.Broadcast) *BroadcastSender {
	return &BroadcastSender{
		directory: directory,
		enqueuer:  enqueuer,
		cfg:       cfg,
	}
}

func (b *BroadcastSender) ProcessTask(ctx context.Context, task *asynq.Task) error {
	log.Info(ctx, "Starting release note broadcast")

	var payload ReleaseNotePayload

	err := json.Unmarshal(task.Payload(), &payload)
	if err != nil {
		log.Error(ctx, "Failed to unmarshal release note payload", err)
		return err
	}

	batchSize := b.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = repo.DefaultLimit
	}

	total := 0

	for offset := 0; ; offset += batchSize {
		tenants, _, err := b.directory.ListTenants(ctx, repo.TenantQuery{
			Active: ptr.To(true),
			Banned: ptr.To(false),
			Limit:  batchSize,
			Offset: offset,
		})
		if err != nil {
			log.Error(ctx, "Failed to list tenants for broadcast", err)
			return err
		}

		if len(tenants) == 0 {
			break
		}

		recipients := make([]string, 0, len(tenants))
		for _, tenant := range tenants {
			recipients = append(recipients, tenant.Email)
		}

		err = b.enqueueBatch(ctx, recipients, payload)
		if err != nil {
			return err
		}

		total += len(tenants)

		if len(tenants) < batchSize {
			break
		}
	}

	log.Info(ctx, "Release note broadcast enqueued", slog.Int("tenantCount", total))

	return nil
}

func (b *BroadcastSender) enqueueBatch(ctx context.Context, recipients []string, payload ReleaseNotePayload) error {
	data, err := json.Marshal(EmailPayload{
		Recipients: recipients,
		Subject:    payload.Subject,
		Body:       payload.Body,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(config.TypeSendEmail, data)

	_, err = b.enqueuer.EnqueueContext(ctx, task, asynq.MaxRetry(b.cfg.MaxRetries))
	if err != nil {
		log.Error(ctx, "Failed to enqueue delivery batch", err)
		return err
	}

	return nil
}

func (b *BroadcastSender) TaskType() string {
	return config.TypeBroadcastReleaseNote
}
