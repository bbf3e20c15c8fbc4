package media

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskStore_UploadAndDelete(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	root := t.TempDir()
	store, err := NewDiskStore(root, "/uploads", slog.Default())
	req.NoError(err)

	url, err := store.Upload(ctx, []byte("%PDF-1.4 fake"), "report.pdf")
	req.NoError(err)
	req.True(strings.HasPrefix(url, "/uploads/"))
	req.Equal(".pdf", filepath.Ext(url))

	// The blob exists on disk under the returned name
	entries, err := os.ReadDir(root)
	req.NoError(err)
	req.Len(entries, 1)

	store.Delete(ctx, url)
	entries, err = os.ReadDir(root)
	req.NoError(err)
	req.Empty(entries)

	// Deleting again, or deleting a foreign URL, is silent
	store.Delete(ctx, url)
	store.Delete(ctx, "https://elsewhere.example.com/x.png")
}

func TestDiskStore_SniffsExtensionWhenNameless(t *testing.T) {
	req := require.New(t)
	store, err := NewDiskStore(t.TempDir(), "/uploads", slog.Default())
	req.NoError(err)

	// A real PNG header, so content sniffing resolves the extension
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	url, err := store.Upload(context.Background(), png, "")
	req.NoError(err)
	req.Equal(".png", filepath.Ext(url))
}

func TestDecodeDataURI(t *testing.T) {
	req := require.New(t)
	raw := []byte("hello attachment")
	encoded := base64.StdEncoding.EncodeToString(raw)

	// Bare base64
	decoded, err := DecodeDataURI(encoded)
	req.NoError(err)
	req.Equal(raw, decoded)

	// Browser-style data URI
	decoded, err = DecodeDataURI("data:text/plain;base64," + encoded)
	req.NoError(err)
	req.Equal(raw, decoded)

	_, err = DecodeDataURI("!!! not base64 !!!")
	req.Error(err)
}
