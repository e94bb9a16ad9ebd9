package async

import (
	"context"

	"github.com/hibiken/asynq"
)

// Client is the enqueue surface managers depend on. *asynq.Client satisfies
// it; tests use MockClient.
type Client interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}
