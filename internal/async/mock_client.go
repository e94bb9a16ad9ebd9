package async

import (
	"context"

	"github.com/hibiken/asynq"
)

// MockClient implements the Client interface for testing
type MockClient struct {
	CallCount int
	LastTask  *asynq.Task
	Tasks     []*asynq.Task
	Error     error
}

func (m *MockClient) Close() error {
	return nil
}

func (m *MockClient) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	return m.enqueue(task, opts)
}

func (m *MockClient) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	return m.enqueue(task, opts)
}

func (m *MockClient) enqueue(task *asynq.Task, _ []asynq.Option) (*asynq.TaskInfo, error) {
	m.CallCount++

	m.LastTask = task
	m.Tasks = append(m.Tasks, task)

	if m.Error != nil {
		return nil, m.Error
	}

	return &asynq.TaskInfo{ID: "mock-task-id"}, nil
}
