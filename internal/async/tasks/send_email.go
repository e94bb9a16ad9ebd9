package tasks

import (
	"context"
	"encoding/json"
	"time"

	retry "github.com/avast/retry-go/v5"
	"github.com/hibiken/asynq"

	"github.com/portfoliopro/folio/internal/config"
	"github.com/portfoliopro/folio/internal/log"
	"github.com/portfoliopro/folio/internal/notifier"
)

const (
	deliveryDelay    = 100 * time.Millisecond
	deliveryMaxDelay = 2 * time.Second
	deliveryAttempts = 3
)

// EmailSender delivers one recipient batch through the configured notifier.
// Transient delivery failures retry in-process before asynq's own retry
// takes over.
type EmailSender struct {
	notifier notifier.Notifier
}

func NewEmailSender(n notifier.Notifier) *EmailSender {
	return &EmailSender{notifier: n}
}

func (e *EmailSender) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload EmailPayload

	err := json.Unmarshal(task.Payload(), &payload)
	if err != nil {
		log.Error(ctx, "Failed to unmarshal email payload", err)
		return err
	}

	retrier := retry.New(
		retry.Delay(deliveryDelay),
		retry.MaxDelay(deliveryMaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.Attempts(deliveryAttempts),
		retry.LastErrorOnly(true),
	)

	err = retrier.Do(func() error {
		return e.notifier.Send(ctx, notifier.Data{
			Recipients: payload.Recipients,
			Subject:    payload.Subject,
			Body:       payload.Body,
		})
	})
	if err != nil {
		log.Error(ctx, "Failed to deliver email batch", err)
		return err
	}

	return nil
}

func (e *EmailSender) TaskType() string {
	return config.TypeSendEmail
}
