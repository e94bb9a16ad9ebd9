package async

import "errors"

var (
	ErrEnqueueingTask   = errors.New("enqueue task")
	ErrClientShutdown   = errors.New("client shutdown")
	ErrStartingWorker   = errors.New("starting worker")
	ErrLoadingQueueHost = errors.New("error loading task queue host")
	ErrACLPassword      = errors.New("failed to load task queue password")
	ErrACLUsername      = errors.New("failed to load task queue username")
)
