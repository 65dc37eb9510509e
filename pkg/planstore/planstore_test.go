package planstore

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSetsSerializedDocumentUnderPrefixedKey(t *testing.T) {
	client, mock := redismock.NewClientMock()
	id := uuid.New()
	payload := []byte("version: 1\n")

	mock.ExpectSet(keyPrefix+id.String(), payload, time.Minute).SetVal("OK")

	store := New(client, time.Minute)
	err := store.Save(context.Background(), id, payload)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadReturnsStoredBytes(t *testing.T) {
	client, mock := redismock.NewClientMock()
	id := uuid.New()
	payload := []byte("version: 1\n")

	mock.ExpectGet(keyPrefix + id.String()).SetVal(string(payload))

	store := New(client, 0)
	got, err := store.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadWrapsRedisNilAsError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	id := uuid.New()

	mock.ExpectGet(keyPrefix + id.String()).RedisNil()

	store := New(client, 0)
	_, err := store.Load(context.Background(), id)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestDeleteRemovesKey(t *testing.T) {
	client, mock := redismock.NewClientMock()
	id := uuid.New()

	mock.ExpectDel(keyPrefix + id.String()).SetVal(1)

	store := New(client, 0)
	err := store.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
