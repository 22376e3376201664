package redisimpls

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libphysics/piecewise"
	"github.com/sgostarter/libphysics/piecewise/store"
	"gopkg.in/yaml.v3"
)

func NewRedisFunctionStorage(preKey string, redisCli *redis.Client, logger l.Wrapper) store.Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "functionStorage"))

	if redisCli == nil {
		logger.Fatal("no redis client")
	}

	return &functionStorage{
		logger:   logger,
		preKey:   preKey,
		redisCli: redisCli,
	}
}

type functionStorage struct {
	logger   l.Wrapper
	preKey   string
	redisCli *redis.Client
}

func (impl *functionStorage) functionKey(key string) string {
	return impl.preKey + key
}

func (impl *functionStorage) Save(key string, fn *piecewise.Function) error {
	if fn == nil {
		return commerr.ErrInvalidArgument
	}

	d, err := yaml.Marshal(store.EncodeFunction(fn))
	if err != nil {
		return err
	}

	return impl.redisCli.Set(context.Background(), impl.functionKey(key), d, 0).Err()
}

func (impl *functionStorage) Load(key string) (*piecewise.Function, error) {
	d, err := impl.redisCli.Get(context.Background(), impl.functionKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, commerr.ErrNotFound
		}

		return nil, err
	}

	var ds []store.SampleD

	if err = yaml.Unmarshal(d, &ds); err != nil {
		return nil, err
	}

	return store.DecodeFunction(ds)
}

func (impl *functionStorage) Keys() ([]string, error) {
	keys, err := impl.redisCli.Keys(context.Background(), impl.preKey+"*").Result()
	if err != nil {
		return nil, err
	}

	for idx := range keys {
		keys[idx] = strings.TrimPrefix(keys[idx], impl.preKey)
	}

	sort.Strings(keys)

	return keys, nil
}
