package entities

import (
	"path"
	"strings"

	"company-site.backend/pkg/validation"
)

// MediaAsset is an uploaded file tracked in the media library.
type MediaAsset struct {
	Record
	Filename    string `json:"filename" validate:"notblank,max=255"`
	URL         string `json:"url" validate:"notblank"`
	Type        string `json:"type"`
	Size        int64  `json:"size" validate:"gte=0"`
	Folder      string `json:"folder"`
	ContentType string `json:"contentType"`
	StorageKey  string `json:"storageKey"`
}

func (m *MediaAsset) Kind() Kind          { return KindMedia }
func (m *MediaAsset) StatusValue() string { return m.Type }
func (m *MediaAsset) IsPublic() bool      { return true }

func (m *MediaAsset) Normalize() {
	m.Filename = strings.TrimSpace(m.Filename)
	m.Folder = strings.Trim(strings.TrimSpace(m.Folder), "/")
	if m.Type == "" {
		m.Type = MediaTypeFor(m.ContentType)
	}
}

func (m *MediaAsset) Validate() validation.Errors {
	errs := validation.Struct(m)
	if !MediaTypes.Contains(m.Type) {
		if errs == nil {
			errs = validation.Errors{}
		}
		errs["type"] = "Type must be one of: " + MediaTypes.String()
	}
	return errs
}

// SetStatus reclassifies the asset's media type.
func (m *MediaAsset) SetStatus(status string) error {
	if !MediaTypes.Contains(status) {
		return invalidStatus(MediaTypes)
	}
	m.Type = status
	return nil
}

// MediaTypeFor maps a MIME type onto a media library category.
func MediaTypeFor(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch {
	case strings.HasPrefix(ct, "image/"):
		return MediaImage
	case strings.HasPrefix(ct, "video/"):
		return MediaVideo
	case strings.HasPrefix(ct, "audio/"):
		return MediaAudio
	case ct == "application/pdf",
		ct == "application/msword",
		strings.HasPrefix(ct, "application/vnd.openxmlformats-officedocument"),
		strings.HasPrefix(ct, "text/"):
		return MediaDocument
	}
	return MediaOther
}

// StorageName builds the object name for an upload inside folder.
func StorageName(folder, name string) string {
	folder = strings.Trim(folder, "/")
	name = path.Base("/" + strings.ReplaceAll(name, "\\", "/"))
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
