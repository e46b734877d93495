package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = Close() })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()
	calls := 0

	fetch := func(dest *snapshot) func() error {
		return func() error {
			calls++
			*dest = snapshot{ID: "u1", Name: "alice"}
			return nil
		}
	}

	var first snapshot
	require.NoError(t, Aside(ctx, UserKey("u1"), &first, time.Minute, fetch(&first)))
	assert.Equal(t, "alice", first.Name)
	assert.True(t, mr.Exists(UserKey("u1")))

	var second snapshot
	require.NoError(t, Aside(ctx, UserKey("u1"), &second, time.Minute, fetch(&second)))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	ttl := mr.TTL(UserKey("u1"))
	assert.Equal(t, time.Minute, ttl)
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	mr := setupMiniredis(t)
	sentinel := errors.New("not found")

	var dest snapshot
	err := Aside(context.Background(), UserKey("missing"), &dest, time.Minute, func() error { return sentinel })

	assert.ErrorIs(t, err, sentinel)
	assert.False(t, mr.Exists(UserKey("missing")))
}

func TestAside_NilClientPassesThrough(t *testing.T) {
	SetClient(nil)

	var dest snapshot
	err := Aside(context.Background(), UserKey("u2"), &dest, time.Minute, func() error {
		dest = snapshot{ID: "u2"}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "u2", dest.ID)
}

func TestAside_RedisDownFallsBackToFetch(t *testing.T) {
	mr := setupMiniredis(t)
	mr.Close()

	var dest snapshot
	err := Aside(context.Background(), UserKey("u3"), &dest, time.Minute, func() error {
		dest = snapshot{ID: "u3"}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "u3", dest.ID)
}

func TestInvalidateUser(t *testing.T) {
	mr := setupMiniredis(t)
	require.NoError(t, SetJSON(context.Background(), UserKey("u4"), snapshot{ID: "u4"}, time.Minute))
	require.True(t, mr.Exists(UserKey("u4")))

	InvalidateUser(context.Background(), "u4")
	assert.False(t, mr.Exists(UserKey("u4")))
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Cleanup(func() { _ = Close() })

	InitRedis(mr.Addr())
	require.NotNil(t, GetClient())

	InitRedis("redis://" + mr.Addr() + "/0")
	require.NotNil(t, GetClient())

	InitRedis("://bad")
	assert.Nil(t, GetClient())
}
