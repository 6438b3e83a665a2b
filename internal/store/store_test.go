package store

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeObjects is an in-memory ObjectAPI.
type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	keys    []string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: make(map[string][]byte)}
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, *in.Key)
	body, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, *in.Key)
	f.objects[*in.Bucket+"/"+*in.Key] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, *in.Key)
	delete(f.objects, *in.Bucket+"/"+*in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

// testStore exercises the Store contract against a backend.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok, "absent key is not an error")

	require.NoError(t, s.Set(ctx, KeyUser, `{"id":1}`))
	v, ok, err := s.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":1}`, v)

	require.NoError(t, s.Set(ctx, KeyUser, `{"id":2}`))
	v, _, err = s.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"id":2}`, v, "set overwrites")

	require.NoError(t, s.Remove(ctx, KeyUser))
	_, ok, err = s.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Remove(ctx, KeyUser), "removing an absent key succeeds")
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.db")
	s, err := NewSQLite(context.Background(), path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	testStore(t, s)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	s, err := NewSQLite(ctx, path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyUserProducts, `[]`))
	require.NoError(t, s.Close())

	reopened, err := NewSQLite(ctx, path, zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, KeyUserProducts)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)
}

func TestS3(t *testing.T) {
	objects := newFakeObjects()
	s := NewS3WithClient(objects, "bucket", "store/", zerolog.Nop())

	testStore(t, s)

	for _, key := range objects.keys {
		assert.Regexp(t, `^store/`, key, "object keys carry the prefix")
	}
}

func TestGetJSON(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	var out struct {
		ID int `json:"id"`
	}

	ok, err := GetJSON(ctx, s, KeyUser, &out)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetJSON(ctx, s, KeyUser, map[string]int{"id": 7}))
	ok, err = GetJSON(ctx, s, KeyUser, &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, out.ID)

	require.NoError(t, s.Set(ctx, KeyUser, "{not json"))
	ok, err = GetJSON(ctx, s, KeyUser, &out)
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrCorrupt)
}
