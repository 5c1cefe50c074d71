// Package storage keeps uploaded files for the media library and job applications.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"company-site.backend/internal/config"
	"github.com/google/uuid"
)

// Object describes a stored file.
type Object struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// Uploader stores and removes files.
type Uploader interface {
	Upload(ctx context.Context, folder, name, contentType string, r io.Reader) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// New returns the uploader selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Uploader, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "local":
		return NewLocalUploader(cfg.LocalDir, cfg.PublicBaseURL), nil
	case "gcs":
		return NewGCSUploader(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

var newObjectID = func() string {
	return time.Now().UTC().Format("20060102") + "-" + uuid.NewString()[:8]
}

// objectKey prefixes the sanitized name so repeated uploads never collide.
func objectKey(folder, name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, name)
	name = strings.TrimLeft(name, ".")
	if name == "" {
		name = "file"
	}
	key := newObjectID() + "-" + name

	var parts []string
	for _, p := range strings.Split(strings.ReplaceAll(folder, `\`, "/"), "/") {
		p = strings.TrimSpace(p)
		if p == "" || p == "." || p == ".." {
			continue
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return key
	}
	return strings.Join(parts, "/") + "/" + key
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
