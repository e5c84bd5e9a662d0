package gemini

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F', 0}
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestResolveImage_LocalPNG(t *testing.T) {
	path := writeTempFile(t, "pic.bin", pngBytes)

	mime, data, err := resolveImage(context.Background(), http.DefaultClient, path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pngBytes), data)
}

func TestResolveImage_LocalJPEG(t *testing.T) {
	path := writeTempFile(t, "pic.bin", jpegBytes)

	mime, _, err := resolveImage(context.Background(), http.DefaultClient, path)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
}

func TestResolveImage_RemoteURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngBytes)
	}))
	defer srv.Close()

	mime, data, err := resolveImage(context.Background(), srv.Client(), srv.URL+"/pic.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pngBytes), data)
}

func TestResolveImage_DownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, _, err := resolveImage(context.Background(), srv.Client(), srv.URL+"/missing.png")
	require.ErrorIs(t, err, ErrImageDownload)
	assert.Contains(t, err.Error(), "404")
}

func TestResolveImage_NotAnImage(t *testing.T) {
	path := writeTempFile(t, "notes.txt", []byte("just some text"))

	_, _, err := resolveImage(context.Background(), http.DefaultClient, path)
	assert.ErrorIs(t, err, ErrImageFormat)
}

func TestResolveImage_MissingFile(t *testing.T) {
	_, _, err := resolveImage(context.Background(), http.DefaultClient, filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}
