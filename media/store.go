//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../mocks/mock_media_store.go -package=mocks
// Package media stores uploaded message attachments and profile pictures
// as opaque blobs addressed by URL.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Store uploads blobs and returns a URL. Delete is best-effort: failures
// are logged and swallowed, never surfaced to the caller.
type Store interface {
	Upload(ctx context.Context, data []byte, name string) (string, error)
	Delete(ctx context.Context, url string)
}

// DiskStore writes blobs under a local root directory, served statically
// under baseURL.
type DiskStore struct {
	root    string
	baseURL string
	log     *slog.Logger
}

func NewDiskStore(root, baseURL string, log *slog.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating media root: %w", err)
	}
	return &DiskStore{root: root, baseURL: strings.TrimRight(baseURL, "/"), log: log}, nil
}

// Upload stores the blob under a random name. The extension comes from the
// provided name when present, otherwise from content sniffing.
func (s *DiskStore) Upload(ctx context.Context, data []byte, name string) (string, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		ext = mimetype.Detect(data).Extension()
	}
	filename := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.root, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("writing blob: %w", err)
	}
	return s.baseURL + "/" + filename, nil
}

// Delete removes a blob previously returned by Upload. A URL outside this
// store or an already-missing file is ignored.
func (s *DiskStore) Delete(ctx context.Context, url string) {
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return
	}
	filename := filepath.Base(strings.TrimPrefix(url, s.baseURL+"/"))
	if err := os.Remove(filepath.Join(s.root, filename)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("blob delete failed", "url", url, "error", err)
	}
}

// DecodeDataURI decodes the base64 payloads clients send for attachments,
// with or without the "data:...;base64," prefix.
func DecodeDataURI(s string) ([]byte, error) {
	if idx := strings.Index(s, ";base64,"); idx >= 0 {
		s = s[idx+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(s)
}
