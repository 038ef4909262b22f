package mem

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareLinks_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	cache := NewShareLinks()
	cache.now = func() time.Time { return now }

	e := ShareLinkEntry{ShareID: uuid.New(), TripID: uuid.New()}
	require.NoError(t, cache.Set(ctx, "tok", e, time.Minute))

	got, ok, err := cache.Get(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, e, got)

	now = now.Add(2 * time.Minute)
	_, ok, err = cache.Get(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())

	require.NoError(t, cache.Set(ctx, "tok", e, time.Minute))
	require.NoError(t, cache.Delete(ctx, "tok"))
	_, ok, _ = cache.Get(ctx, "tok")
	assert.False(t, ok)
}

func TestRedisShareLinks(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	cache := NewRedisShareLinks(db)

	e := ShareLinkEntry{ShareID: uuid.New(), TripID: uuid.New()}
	payload, err := json.Marshal(e)
	require.NoError(t, err)

	mock.ExpectSetEx("share:token:abc", payload, 5*time.Minute).SetVal("OK")
	require.NoError(t, cache.Set(ctx, "abc", e, 5*time.Minute))

	mock.ExpectGet("share:token:abc").SetVal(string(payload))
	got, ok, err := cache.Get(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, e, got)

	mock.ExpectGet("share:token:missing").RedisNil()
	_, ok, err = cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectGet("share:token:broken").SetErr(errors.New("connection reset"))
	_, _, err = cache.Get(ctx, "broken")
	assert.Error(t, err)

	mock.ExpectDel("share:token:abc").SetVal(1)
	require.NoError(t, cache.Delete(ctx, "abc"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
