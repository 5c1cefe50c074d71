package adminclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"

	"company-site.backend/internal/domain/entities"
)

const mediaUploadPath = "/api/admin/media/upload"

// Uploader stores a file and returns the media record it became.
type Uploader interface {
	Upload(ctx context.Context, folder, name string, r io.Reader) (*entities.MediaAsset, error)
}

// Upload sends r to the media library under folder. The part's content type is
// taken from the file extension.
func (c *Client) Upload(ctx context.Context, folder, name string, r io.Reader) (*entities.MediaAsset, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("folder", folder); err != nil {
		return nil, fmt.Errorf("write folder field: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(name)))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("copy %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	var out struct {
		Media *entities.MediaAsset `json:"media"`
	}
	if err := c.do(ctx, http.MethodPost, mediaUploadPath, nil, w.FormDataContentType(), &buf, &out); err != nil {
		return nil, err
	}
	if out.Media == nil {
		return nil, fmt.Errorf("upload %s: response has no media object", name)
	}
	return out.Media, nil
}
