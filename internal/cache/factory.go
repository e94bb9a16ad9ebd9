package cache

import (
	"errors"
	"net"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/redis/go-redis/v9"

	"github.com/portfoliopro/folio/internal/config"
	"github.com/portfoliopro/folio/internal/errs"
)

const keyNamespace = "folio:"

var (
	ErrLoadingRedisHost     = errors.New("error loading redis host")
	ErrLoadingRedisUsername = errors.New("error loading redis username")
	ErrLoadingRedisPassword = errors.New("error loading redis password")
)

// NewStoreFromConfig builds the shared cache store. Nil means caching is
// disabled and callers fall through to the directory on every lookup.
func NewStoreFromConfig(cfg config.Cache) (Store, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	if cfg.Redis == nil {
		return NewMemoryStore(), nil
	}

	opts, err := redisOptions(*cfg.Redis)
	if err != nil {
		return nil, err
	}

	return NewRedisStore(redis.NewClient(opts), keyNamespace), nil
}

func redisOptions(cfg config.Redis) (*redis.Options, error) {
	host, err := commoncfg.LoadValueFromSourceRef(cfg.Host)
	if err != nil {
		return nil, errs.Wrap(ErrLoadingRedisHost, err)
	}

	opts := &redis.Options{
		Addr: net.JoinHostPort(string(host), cfg.Port),
	}

	if cfg.ACL.Enabled {
		username, err := commoncfg.LoadValueFromSourceRef(cfg.ACL.Username)
		if err != nil {
			return nil, errs.Wrap(ErrLoadingRedisUsername, err)
		}

		password, err := commoncfg.LoadValueFromSourceRef(cfg.ACL.Password)
		if err != nil {
			return nil, errs.Wrap(ErrLoadingRedisPassword, err)
		}

		opts.Username = string(username)
		opts.Password = string(password)
	}

	return opts, nil
}
