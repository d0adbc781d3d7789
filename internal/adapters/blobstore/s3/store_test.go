package s3

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"equine-clinic/internal/ports/blob"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type object struct {
	data        []byte
	contentType string
	metadata    map[string]string
}

// fakeAPI simula un bucket en memoria con los errores tipados de S3.
type fakeAPI struct {
	objs map[string]object
}

func (f *fakeAPI) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	o, ok := f.objs[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	now := time.Now()
	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(o.data))),
		ContentType:   aws.String(o.contentType),
		Metadata:      o.metadata,
		LastModified:  &now,
	}, nil
}

func (f *fakeAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objs[aws.ToString(in.Key)] = object{data: b, contentType: aws.ToString(in.ContentType), metadata: in.Metadata}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeAPI) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	o, ok := f.objs[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(o.data)),
		ContentLength: aws.Int64(int64(len(o.data))),
		ContentType:   aws.String(o.contentType),
	}, nil
}

func (f *fakeAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objs, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func newFakeStore() *Store {
	return &Store{client: &fakeAPI{objs: map[string]object{}}, bucket: "clinic"}
}

func TestStore_RoundTrip(t *testing.T) {
	s := newFakeStore()
	ctx := context.Background()

	info, err := s.Put(ctx, "events/e1/x.jpg", bytes.NewBufferString("jpeg"), blob.PutOptions{ContentType: "image/jpeg"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), info.Size)
	assert.Equal(t, "image/jpeg", info.ContentType)

	_, err = s.Put(ctx, "events/e1/x.jpg", bytes.NewBufferString("again"), blob.PutOptions{})
	require.ErrorIs(t, err, blob.ErrExists)

	_, rc, err := s.Get(ctx, "events/e1/x.jpg")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "jpeg", string(b))

	_, _, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, blob.ErrNotFound)

	ok, err := s.Delete(ctx, "events/e1/x.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_PresignWithoutClientIsUnsupported(t *testing.T) {
	_, err := newFakeStore().PresignURL(context.Background(), "k", time.Minute)
	assert.ErrorIs(t, err, blob.ErrUnsupported)
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}
