package async

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/hibiken/asynq"
	"github.com/openkcm/common-sdk/pkg/commoncfg"

	"github.com/portfoliopro/folio/internal/async/tasks"
	"github.com/portfoliopro/folio/internal/cache"
	conf "github.com/portfoliopro/folio/internal/config"
	"github.com/portfoliopro/folio/internal/db"
	"github.com/portfoliopro/folio/internal/errs"
	"github.com/portfoliopro/folio/internal/log"
	"github.com/portfoliopro/folio/internal/notifier"
	"github.com/portfoliopro/folio/internal/repo/sql"
	"github.com/portfoliopro/folio/internal/tenantcache"
)

// TaskHandler defines the interface for handling async tasks
type TaskHandler interface {
	ProcessTask(ctx context.Context, task *asynq.Task) error
	TaskType() string
}

// App manages task enqueueing and worker processing
type App struct {
	asynqClient  *asynq.Client
	asynqServer  *asynq.Server
	taskQueueCfg asynq.RedisClientOpt
	tasks        map[string]TaskHandler
	cfg          *conf.Config
}

// New creates a new instance of App
func New(cfg *conf.Config) (*App, error) {
	redisOpts, err := buildRedisClientOpt(cfg.TaskQueue)
	if err != nil {
		return nil, err
	}

	return &App{
		taskQueueCfg: redisOpts,
		asynqClient:  asynq.NewClient(redisOpts),
		tasks:        make(map[string]TaskHandler),
		cfg:          cfg,
	}, nil
}

// Client exposes the enqueue surface for managers.
func (a *App) Client() Client {
	return a.asynqClient
}

// RegisterTasks registers multiple task handlers
func (a *App) RegisterTasks(ctx context.Context, handlers []TaskHandler) {
	for _, handler := range handlers {
		taskType := handler.TaskType()
		a.tasks[taskType] = handler
		log.Info(ctx, "Registered task", slog.String("Name", taskType))
	}
}

// RunWorker starts the worker process to process the tasks
func (a *App) RunWorker(ctx context.Context) error {
	log.Info(ctx, "Starting async worker")

	dbCon, err := db.StartDBConnection(ctx, a.cfg.Database, a.cfg.DatabaseReplicas)
	if err != nil {
		return errs.Wrap(db.ErrStartingDBCon, err)
	}

	r := sql.NewRepository(dbCon)

	store, err := cache.NewStoreFromConfig(a.cfg.Cache)
	if err != nil {
		return err
	}

	tenants := tenantcache.New(store, r, a.cfg.Cache.TTL)

	log.Info(ctx, "Registering Tasks")
	a.RegisterTasks(ctx,
		[]TaskHandler{
			tasks.NewBroadcastSender(r, a.asynqClient, a.cfg.Broadcast),
			tasks.NewEmailSender(notifier.NewLogNotifier()),
			tasks.NewCacheWarmer(r, tenants),
		})

	a.asynqServer = asynq.NewServer(a.taskQueueCfg, asynq.Config{})

	mux := asynq.NewServeMux()

	for taskName, handler := range a.tasks {
		h := handler

		mux.HandleFunc(taskName, func(ctx context.Context, task *asynq.Task) error {
			ctx = log.InjectTask(ctx, task)
			return h.ProcessTask(ctx, task)
		})
	}

	log.Info(ctx, "Starting worker server")

	err = a.asynqServer.Run(mux)
	if err != nil {
		return errs.Wrap(ErrStartingWorker, err)
	}

	return nil
}

// EnqueueTask is used to run tasks
func (a *App) EnqueueTask(
	ctx context.Context,
	task *asynq.Task,
	opts ...asynq.Option,
) (*asynq.TaskInfo, error) {
	ctx = log.InjectTask(ctx, task)
	log.Debug(ctx, "Enqueuing task to be processed")

	info, err := a.asynqClient.Enqueue(task, opts...)
	if err != nil {
		return nil, errs.Wrap(ErrEnqueueingTask, err)
	}

	log.Debug(ctx, "Enqueued task")

	return info, nil
}

// Shutdown gracefully shuts down the worker
func (a *App) Shutdown(ctx context.Context) error {
	log.Info(ctx, "Starting async app shutdown")

	if a.asynqServer != nil {
		a.asynqServer.Shutdown()
	}

	if a.asynqClient != nil {
		err := a.asynqClient.Close()
		if err != nil {
			return errs.Wrap(ErrClientShutdown, err)
		}
	}

	log.Info(ctx, "Async app shutdown completed")

	return nil
}

func buildRedisClientOpt(cfg conf.Redis) (asynq.RedisClientOpt, error) {
	host, err := commoncfg.LoadValueFromSourceRef(cfg.Host)
	if err != nil {
		return asynq.RedisClientOpt{}, errs.Wrap(ErrLoadingQueueHost, err)
	}

	opts := asynq.RedisClientOpt{
		Addr:        net.JoinHostPort(string(host), cfg.Port),
		DialTimeout: 5 * time.Second,
	}

	if cfg.ACL.Enabled {
		username, err := commoncfg.LoadValueFromSourceRef(cfg.ACL.Username)
		if err != nil {
			return asynq.RedisClientOpt{}, ErrACLUsername
		}

		password, err := commoncfg.LoadValueFromSourceRef(cfg.ACL.Password)
		if err != nil {
			return asynq.RedisClientOpt{}, ErrACLPassword
		}

		opts.Username = string(username)
		opts.Password = string(password)
	}

	return opts, nil
}
