package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 keeps objects in a map and records the bucket each call targeted.
type fakeS3 struct {
	objects map[string][]byte
	buckets []string
	getErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.buckets = append(f.buckets, aws.ToString(in.Bucket))
	if f.getErr != nil {
		return nil, f.getErr
	}
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.buckets = append(f.buckets, aws.ToString(in.Bucket))
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = b
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.buckets = append(f.buckets, aws.ToString(in.Bucket))
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeS3()
	s := NewS3(client, "tournaments")

	_, err := s.Get(ctx, testKey)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, testKey, []byte(`{"players":[]}`)))
	got, err := s.Get(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, `{"players":[]}`, string(got))

	require.NoError(t, s.Delete(ctx, testKey))
	_, err = s.Get(ctx, testKey)
	assert.ErrorIs(t, err, ErrNotFound)

	for _, b := range client.buckets {
		assert.Equal(t, "tournaments", b)
	}
}

func TestS3_GenericNotFoundCode(t *testing.T) {
	client := newFakeS3()
	client.getErr = &smithy.GenericAPIError{Code: "NoSuchKey", Message: "gone"}

	_, err := NewS3(client, "b").Get(context.Background(), testKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestS3_OtherErrorsAreWrapped(t *testing.T) {
	boom := errors.New("network down")
	client := newFakeS3()
	client.getErr = boom

	_, err := NewS3(client, "b").Get(context.Background(), testKey)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestS3_BacksTournaments(t *testing.T) {
	ctx := context.Background()
	repo := NewTournaments(NewS3(newFakeS3(), "b"), testKey)

	s, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, s.Players)
}
