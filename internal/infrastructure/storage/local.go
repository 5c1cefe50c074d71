package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalUploader writes files below a directory the HTTP server exposes at baseURL.
type LocalUploader struct {
	dir     string
	baseURL string
}

func NewLocalUploader(dir, baseURL string) *LocalUploader {
	if dir == "" {
		dir = "./uploads"
	}
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalUploader{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Dir is the root directory served for uploaded files.
func (u *LocalUploader) Dir() string { return u.dir }

func (u *LocalUploader) Upload(ctx context.Context, folder, name, contentType string, r io.Reader) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := objectKey(folder, name)
	target := filepath.Join(u.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	n, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(target)
		if copyErr != nil {
			return nil, fmt.Errorf("write upload file: %w", copyErr)
		}
		return nil, fmt.Errorf("close upload file: %w", closeErr)
	}

	return &Object{
		URL:         u.baseURL + "/" + key,
		Key:         key,
		Size:        n,
		ContentType: contentType,
	}, nil
}

// Delete removes a stored file; a missing file is not an error.
func (u *LocalUploader) Delete(_ context.Context, key string) error {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if clean == string(filepath.Separator) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	err := os.Remove(filepath.Join(u.dir, clean))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}
