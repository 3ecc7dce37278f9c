package booking

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"blissdrive/models"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDraftStoreSaveAndGet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisDraftStore(client, 30*time.Minute)
	ctx := context.Background()

	draft := &models.BookingDraft{
		DraftID:   "d-1",
		StudentID: "student-1",
		Step:      models.StepSelectTypeAndSlot,
	}
	data, err := json.Marshal(draft)
	require.NoError(t, err)

	mock.ExpectSet("draft:d-1", data, 30*time.Minute).SetVal("OK")
	require.NoError(t, store.Save(ctx, draft))

	mock.ExpectGet("draft:d-1").SetVal(string(data))
	loaded, err := store.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, draft, loaded)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisDraftStoreGetMissing(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisDraftStore(client, 30*time.Minute)

	mock.ExpectGet("draft:gone").RedisNil()
	_, err := store.Get(context.Background(), "gone")
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeDraftNotFound))
}

func TestRedisDraftStoreDelete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisDraftStore(client, 30*time.Minute)

	mock.ExpectDel("draft:d-1").SetVal(1)
	require.NoError(t, store.Delete(context.Background(), "d-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
