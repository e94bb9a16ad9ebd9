package manager

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/portfoliopro/folio/internal/async"
	"github.com/portfoliopro/folio/internal/async/tasks"
	"github.com/portfoliopro/folio/internal/config"
	"github.com/portfoliopro/folio/internal/errs"
	"github.com/portfoliopro/folio/internal/log"
	"github.com/portfoliopro/folio/utils/sanitise"
)

// BroadcastManager hands release notes to the task queue. The fan-out over
// tenants happens in the worker, not in the request path.
type BroadcastManager struct {
	client async.Client
}

func NewBroadcastManager(client async.Client) *BroadcastManager {
	return &BroadcastManager{client: client}
}

// SendReleaseNote enqueues one broadcast task covering every active tenant.
func (m *BroadcastManager) SendReleaseNote(ctx context.Context, subject, body string) error {
	err := sanitise.PlainAll(&subject)
	if err != nil {
		return err
	}

	if subject == "" {
		return ErrEmptyTitle
	}

	body, err = sanitise.RichText(body)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(tasks.ReleaseNotePayload{
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(config.TypeBroadcastReleaseNote, payload)

	info, err := m.client.EnqueueContext(ctx, task)
	if err != nil {
		return errs.Wrap(async.ErrEnqueueingTask, err)
	}

	log.Info(ctx, "Enqueued release note broadcast",
		slog.String("task_id", info.ID),
		slog.String("subject", subject))

	return nil
}
