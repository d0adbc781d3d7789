package memory

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"equine-clinic/internal/ports/blob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGetDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, _, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, blob.ErrNotFound)

	info, err := s.Put(ctx, "events/e1/a.png", bytes.NewBufferString("png"), blob.PutOptions{
		ContentType: "image/png",
		Metadata:    map[string]string{"event_id": "e1"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size)

	_, err = s.Put(ctx, "events/e1/a.png", bytes.NewBufferString("x"), blob.PutOptions{})
	require.ErrorIs(t, err, blob.ErrExists)

	got, rc, err := s.Get(ctx, "events/e1/a.png")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
	assert.Equal(t, "image/png", got.ContentType)
	assert.Equal(t, "e1", got.Metadata["event_id"])

	_, err = s.PresignURL(ctx, "events/e1/a.png", time.Minute)
	assert.ErrorIs(t, err, blob.ErrUnsupported)

	existed, err := s.Delete(ctx, "events/e1/a.png")
	require.NoError(t, err)
	assert.True(t, existed)
	existed, err = s.Delete(ctx, "events/e1/a.png")
	require.NoError(t, err)
	assert.False(t, existed)
}
