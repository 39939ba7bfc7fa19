package attachments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/snap-point/activity-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

func TestLocalStorage_SaveReadDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "logo.png", pngHeader, "image/png"))

	data, err := store.ReadAttachment(ctx, "logo.png")
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	// Every read goes back to disk.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.png"), []byte("changed"), 0o644))
	data, err = store.ReadAttachment(ctx, "logo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("changed"), data)

	require.NoError(t, store.Delete(ctx, "logo.png"))
	_, err = store.ReadAttachment(ctx, "logo.png")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Delete(ctx, "logo.png"), "deleting twice is not an error")
}

func TestLocalStorage_RejectsPaths(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"", "../secret", "a/b.png", `a\b.png`, ".."} {
		_, err := store.ReadAttachment(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
		assert.ErrorIs(t, store.Save(ctx, name, pngHeader, ""), ErrInvalidName, name)
	}
}

func TestDetectImage(t *testing.T) {
	mtype, err := DetectImage(pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mtype)

	_, err = DetectImage([]byte("just some text"))
	assert.ErrorIs(t, err, ErrNotAnImage)

	_, err = DetectImage(nil)
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = DetectImage(make([]byte, MaxImageSize+1))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestNewFileName(t *testing.T) {
	a := NewFileName("Beach Day.PNG")
	b := NewFileName("Beach Day.PNG")

	assert.True(t, strings.HasSuffix(a, ".png"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, filepath.Base(a))
}

// fakeBucket answers the few path-style S3 calls the storage makes.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    []string
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		b.puts = append(b.puts, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		data, ok := b.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	case http.MethodDelete:
		delete(b.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3Storage(t *testing.T) {
	bucket := &fakeBucket{objects: map[string][]byte{
		"/media/uploads/posts/logo.png": pngHeader,
	}}
	srv := httptest.NewServer(bucket)
	defer srv.Close()

	store := NewR2Storage(config.R2Config{
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		BucketName:      "media",
		Region:          "auto",
		Endpoint:        srv.URL,
	})
	ctx := context.Background()

	data, err := store.ReadAttachment(ctx, "logo.png")
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	_, err = store.ReadAttachment(ctx, "missing.png")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, "new.png", pngHeader, "image/png"))
	assert.Equal(t, []string{"/media/uploads/posts/new.png"}, bucket.puts)

	require.NoError(t, store.Delete(ctx, "logo.png"))
	_, err = store.ReadAttachment(ctx, "logo.png")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.ReadAttachment(ctx, "../escape")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestS3Storage_AttachmentURL(t *testing.T) {
	private := NewR2Storage(config.R2Config{AccountID: "acct", BucketName: "media", Region: "auto"})
	assert.Empty(t, private.AttachmentURL("logo.png"))

	public := NewR2Storage(config.R2Config{
		AccountID:  "acct",
		BucketName: "media",
		Region:     "auto",
		PublicURL:  "https://cdn.example.com/",
	})
	assert.Equal(t, "https://cdn.example.com/uploads/posts/logo.png", public.AttachmentURL("logo.png"))
	assert.Empty(t, public.AttachmentURL("../escape"))
}
