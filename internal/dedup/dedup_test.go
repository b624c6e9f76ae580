package dedup

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
)

type memoryBlobs struct {
	data map[string]string
	err  error
}

func newMemoryBlobs() *memoryBlobs {
	return &memoryBlobs{data: map[string]string{}}
}

func (m *memoryBlobs) GetBlob(_ context.Context, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	v, ok := m.data[key]
	if !ok {
		return "", common.ErrNotFound
	}
	return v, nil
}

func (m *memoryBlobs) SetBlob(_ context.Context, key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func TestHash(t *testing.T) {
	// SHA-256 of "abc".
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", Hash("abc"))
	assert.Equal(t, Hash("edicto"), Hash("edicto"))
	assert.NotEqual(t, Hash("edicto"), Hash("edictO"))
	assert.Len(t, Hash(""), 64)
}

func TestChecker_DuplicateWarnsWithoutRecording(t *testing.T) {
	ctx := context.Background()
	blobs := newMemoryBlobs()
	checker := NewChecker(NewBlobHistory(blobs), nil)

	first, err := checker.Check(ctx, "boletín 1")
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	second, err := checker.Check(ctx, "boletín 1")
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.Hash, second.Hash)

	assert.Equal(t, fmt.Sprintf("[%q]", first.Hash), blobs.data[HistoryKey])
}

func TestChecker_HistoryReadFailureIsNotFatal(t *testing.T) {
	blobs := newMemoryBlobs()
	blobs.err = errors.New("disk on fire")
	checker := NewChecker(NewBlobHistory(blobs), nil)

	result, err := checker.Check(context.Background(), "boletín")
	require.NoError(t, err)
	assert.False(t, result.Duplicate)
}

func TestBlobHistory_KeepsLastFifty(t *testing.T) {
	ctx := context.Background()
	history := NewBlobHistory(newMemoryBlobs())

	for i := 0; i < HistoryLimit+5; i++ {
		require.NoError(t, history.Record(ctx, Hash(fmt.Sprint(i))))
	}

	evicted, err := history.Contains(ctx, Hash("0"))
	require.NoError(t, err)
	assert.False(t, evicted)

	kept, err := history.Contains(ctx, Hash(fmt.Sprint(HistoryLimit+4)))
	require.NoError(t, err)
	assert.True(t, kept)

	oldestKept, err := history.Contains(ctx, Hash("5"))
	require.NoError(t, err)
	assert.True(t, oldestKept)
}

func TestBlobHistory_CorruptDataReadsAsEmpty(t *testing.T) {
	blobs := newMemoryBlobs()
	blobs.data[HistoryKey] = "{not json"
	history := NewBlobHistory(blobs)

	seen, err := history.Contains(context.Background(), Hash("x"))
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRedisHistory(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	history := NewRedisHistory(db)
	hash := Hash("boletín")

	mock.ExpectLRange(RedisKey, 0, HistoryLimit-1).SetVal([]string{Hash("otro")})
	seen, err := history.Contains(ctx, hash)
	require.NoError(t, err)
	assert.False(t, seen)

	mock.ExpectLPush(RedisKey, hash).SetVal(1)
	mock.ExpectLTrim(RedisKey, 0, HistoryLimit-1).SetVal("OK")
	require.NoError(t, history.Record(ctx, hash))

	mock.ExpectLRange(RedisKey, 0, HistoryLimit-1).SetVal([]string{hash, Hash("otro")})
	seen, err = history.Contains(ctx, hash)
	require.NoError(t, err)
	assert.True(t, seen)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisHistory_Errors(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	history := NewRedisHistory(db)

	mock.ExpectLRange(RedisKey, 0, HistoryLimit-1).SetErr(errors.New("connection refused"))
	_, err := history.Contains(ctx, "h")
	assert.Error(t, err)

	mock.ExpectLPush(RedisKey, "h").SetErr(errors.New("connection refused"))
	assert.Error(t, history.Record(ctx, "h"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
