package infra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/internal/config"
)

func TestNewS3ObjectStore_DisabledWithoutBucket(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	store, err := NewS3ObjectStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestInitRedis_DisabledWithoutURL(t *testing.T) {
	rdb, err := InitRedis(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, rdb)

	_, err = InitRedis(context.Background(), "not a url")
	assert.Error(t, err)
}
