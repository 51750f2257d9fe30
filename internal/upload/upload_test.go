package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeProvider counts backend calls so the tests can assert that input
// validation short-circuits before any network activity.
type fakeProvider struct {
	storeCalls  int
	deleteCalls int
	storeErr    error
	deleteErr   error
	lastKey     string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Store(_ context.Context, data []byte, _ Hints) (*Result, error) {
	f.storeCalls++
	if f.storeErr != nil {
		return nil, f.storeErr
	}
	w, h, format := probe(data)
	return &Result{
		URL:        "https://cdn.example.com/fake/key-1",
		StorageKey: "key-1",
		Width:      w,
		Height:     h,
		Format:     format,
	}, nil
}

func (f *fakeProvider) Delete(_ context.Context, key string) error {
	f.deleteCalls++
	f.lastKey = key
	return f.deleteErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestStoreEmptyBufferFailsFast(t *testing.T) {
	fake := &fakeProvider{}
	svc := NewService(fake, discardLogger())

	for _, data := range [][]byte{nil, {}} {
		_, err := svc.Store(context.Background(), data, Hints{})
		require.ErrorIs(t, err, ErrEmptyFile)
	}
	require.Zero(t, fake.storeCalls, "empty input must not reach the backend")
}

func TestStoreNormalizesResult(t *testing.T) {
	fake := &fakeProvider{}
	svc := NewService(fake, discardLogger())

	data := pngBytes(t, 32, 16)
	res, err := svc.Store(context.Background(), data, Hints{Title: "dunes"})
	require.NoError(t, err)

	require.Equal(t, 1, fake.storeCalls)
	require.Equal(t, "fake", res.Provider)
	require.Equal(t, "key-1", res.StorageKey)
	require.Equal(t, 32, res.Width)
	require.Equal(t, 16, res.Height)
	require.Equal(t, "png", res.Format)
	require.InDelta(t, float64(len(data))/1024, res.SizeKB, 0.001)
	// Thumbnail is derived from the main URL, not a second upload.
	require.Equal(t, "https://cdn.example.com/fake/key-1?thumb=1&w=400&h=300", res.ThumbnailURL)
}

func TestStoreWrapsBackendError(t *testing.T) {
	fake := &fakeProvider{storeErr: errors.New("bucket unreachable")}
	svc := NewService(fake, discardLogger())

	_, err := svc.Store(context.Background(), pngBytes(t, 4, 4), Hints{})
	require.ErrorIs(t, err, ErrBackend)
	require.Contains(t, err.Error(), "bucket unreachable")
}

func TestDeleteBestEffort(t *testing.T) {
	fake := &fakeProvider{deleteErr: errors.New("gone away")}
	svc := NewService(fake, discardLogger())

	// Failure is reported via the flag, never an error or panic.
	ok := svc.Delete(context.Background(), "key-1", "fake")
	require.False(t, ok)
	require.Equal(t, 1, fake.deleteCalls)

	fake.deleteErr = nil
	require.True(t, svc.Delete(context.Background(), "key-1", "fake"))
	require.Equal(t, "key-1", fake.lastKey)
}

func TestDeleteEmptyKeyIsNoop(t *testing.T) {
	fake := &fakeProvider{}
	svc := NewService(fake, discardLogger())
	require.True(t, svc.Delete(context.Background(), "", "fake"))
	require.Zero(t, fake.deleteCalls)
}

func TestThumbnailURLDeterministic(t *testing.T) {
	require.Equal(t, "https://x/y?thumb=1&w=400&h=300", ThumbnailURL("https://x/y"))
	require.Equal(t, "https://x/y?v=2&thumb=1&w=400&h=300", ThumbnailURL("https://x/y?v=2"))
	require.Empty(t, ThumbnailURL(""))
}

func TestObjectKeyShape(t *testing.T) {
	key := objectKey("png")
	require.True(t, strings.HasPrefix(key, "photos/"))
	require.True(t, strings.HasSuffix(key, ".png"))
	require.NotEqual(t, key, objectKey("png"))

	require.True(t, strings.HasSuffix(objectKey(""), ".bin"))
}
