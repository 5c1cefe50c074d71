package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gstorage "google.golang.org/api/storage/v1"
)

const gcsPublicHost = "https://storage.googleapis.com"

// GCSUploader stores files in a Google Cloud Storage bucket.
type GCSUploader struct {
	svc    *gstorage.Service
	bucket string
}

// NewGCSUploader authenticates with credentialsFile when set and with the
// ambient application default credentials otherwise.
func NewGCSUploader(ctx context.Context, bucket, credentialsFile string, opts ...option.ClientOption) (*GCSUploader, error) {
	if bucket == "" {
		return nil, errors.New("gcs bucket is required")
	}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	svc, err := gstorage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage service: %w", err)
	}
	return &GCSUploader{svc: svc, bucket: bucket}, nil
}

func (u *GCSUploader) Upload(ctx context.Context, folder, name, contentType string, r io.Reader) (*Object, error) {
	key := objectKey(folder, name)
	counter := &countingReader{r: r}

	obj := &gstorage.Object{Name: key, ContentType: contentType}
	stored, err := u.svc.Objects.Insert(u.bucket, obj).
		Media(counter, googleapi.ContentType(contentType)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("gcs upload %s: %w", key, err)
	}

	size := counter.n
	if stored.Size > 0 {
		size = int64(stored.Size)
	}
	return &Object{
		URL:         u.publicURL(key),
		Key:         key,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// Delete removes an object; an object that is already gone is not an error.
func (u *GCSUploader) Delete(ctx context.Context, key string) error {
	err := u.svc.Objects.Delete(u.bucket, key).Context(ctx).Do()
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("gcs delete %s: %w", key, err)
	}
	return nil
}

func (u *GCSUploader) publicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return gcsPublicHost + "/" + u.bucket + "/" + strings.Join(segments, "/")
}
