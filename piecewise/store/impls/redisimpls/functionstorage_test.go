// nolint
package redisimpls

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libphysics/dec"
	"github.com/sgostarter/libphysics/piecewise"
	"github.com/stretchr/testify/assert"
)

func Test1(t *testing.T) {
	opts, err := redis.ParseURL("redis://:@127.0.0.1:6379")
	assert.Nil(t, err)

	redisCli := redis.NewClient(opts)

	if err = redisCli.Ping(context.Background()).Err(); err != nil {
		t.Skip("no local redis")
	}

	redisCli.FlushDB(context.Background())

	stg := NewRedisFunctionStorage("ut:fn:", redisCli, nil)

	_, err = stg.Load("absorption")
	assert.True(t, errors.Is(err, commerr.ErrNotFound))

	fn := piecewise.FromSamples([]piecewise.Sample{
		{X: dec.MustParse("0"), Y: dec.MustParse("1.5")},
		{X: dec.MustParse("1e-9"), Y: dec.MustParse("-2")},
	})

	err = stg.Save("absorption", fn)
	assert.Nil(t, err)

	back, err := stg.Load("absorption")
	assert.Nil(t, err)
	assert.True(t, fn.Equal(back))

	err = stg.Save("emission", fn)
	assert.Nil(t, err)

	keys, err := stg.Keys()
	assert.Nil(t, err)
	assert.EqualValues(t, []string{"absorption", "emission"}, keys)
}
