package redisstorage

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/godruoyi/go-snowflake"
	"github.com/sgostarter/histfit/histogram"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

func NewRedisStorage(preKey string, redisCli redis.Cmdable, logger l.Wrapper) histogram.Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "histogramRedisStorage"))

	if redisCli == nil {
		logger.Fatal("no redis client")
	}

	return &redisStorageImpl{
		logger:   logger,
		preKey:   preKey,
		redisCli: redisCli,
	}
}

type redisStorageImpl struct {
	logger   l.Wrapper
	preKey   string
	redisCli redis.Cmdable
}

func (impl *redisStorageImpl) histogramsKey() string {
	if impl.preKey == "" {
		return "histograms"
	}

	return impl.preKey + ":histograms"
}

func (impl *redisStorageImpl) Add(ctx context.Context, name string, h *histogram.Histogram) (id uint64, err error) {
	if h == nil {
		err = commerr.ErrInvalidArgument

		return
	}

	id = snowflake.ID()

	d, err := yaml.Marshal(&histogram.Info{
		ID:        id,
		Name:      name,
		CreateAt:  time.Now().Unix(),
		Histogram: h,
	})
	if err != nil {
		return
	}

	ok, err := impl.redisCli.HSetNX(ctx, impl.histogramsKey(), cast.ToString(id), d).Result()
	if err != nil {
		return
	}

	if !ok {
		err = commerr.ErrAlreadyExists
	}

	return
}

func (impl *redisStorageImpl) Get(ctx context.Context, id uint64) (*histogram.Info, error) {
	d, err := impl.redisCli.HGet(ctx, impl.histogramsKey(), cast.ToString(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = commerr.ErrNotFound
		}

		return nil, err
	}

	return impl.decode(d)
}

func (impl *redisStorageImpl) List(ctx context.Context) (infos []*histogram.Info, err error) {
	m, err := impl.redisCli.HGetAll(ctx, impl.histogramsKey()).Result()
	if err != nil {
		return
	}

	for field, s := range m {
		info, e := impl.decode([]byte(s))
		if e != nil {
			impl.logger.WithFields(l.ErrorField(e), l.StringField("id", field)).Error("decode histogram failed")

			continue
		}

		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})

	return
}

func (impl *redisStorageImpl) Del(ctx context.Context, id uint64) error {
	n, err := impl.redisCli.HDel(ctx, impl.histogramsKey(), cast.ToString(id)).Result()
	if err != nil {
		return err
	}

	if n == 0 {
		return commerr.ErrNotFound
	}

	return nil
}

func (impl *redisStorageImpl) decode(d []byte) (*histogram.Info, error) {
	var info histogram.Info

	if err := yaml.Unmarshal(d, &info); err != nil {
		return nil, err
	}

	if info.Histogram == nil {
		return nil, histogram.ErrInvalidHistogram
	}

	return &info, nil
}
