package usecases

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"company-site.backend/internal/domain/entities"
	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/internal/infrastructure/storage"
	"company-site.backend/pkg/logger"
	"go.uber.org/zap"
)

// DefaultMaxUploadBytes is the upload ceiling when none is configured.
const DefaultMaxUploadBytes int64 = 5 * 1024 * 1024

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// acceptedDocument reports whether applicants may upload files of this MIME type.
func acceptedDocument(contentType string) bool {
	switch contentType {
	case "application/pdf", "application/msword", docxContentType, "image/jpeg", "image/png":
		return true
	}
	return false
}

var documentKinds = map[string]bool{
	entities.DocumentResume:      true,
	entities.DocumentCoverLetter: true,
	entities.DocumentPortfolio:   true,
}

// DocumentUpload is a file sent inline by the public application form.
type DocumentUpload struct {
	// File is base64 data, optionally as a data URL ("data:application/pdf;base64,...").
	File         string `json:"file"`
	FileName     string `json:"fileName"`
	DocumentType string `json:"documentType"`
}

// UploadUsecase stores media library files and applicant documents.
type UploadUsecase struct {
	files    storage.Uploader
	media    *ResourceUsecase[*entities.MediaAsset]
	maxBytes int64
}

func NewUploadUsecase(files storage.Uploader, media *ResourceUsecase[*entities.MediaAsset], maxBytes int64) *UploadUsecase {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadUsecase{files: files, media: media, maxBytes: maxBytes}
}

func (u *UploadUsecase) MaxBytes() int64 { return u.maxBytes }

// UploadMedia stores a file and records it in the media library. The stored
// object is removed again when the record cannot be created.
func (u *UploadUsecase) UploadMedia(ctx context.Context, folder, filename, contentType string, size int64, r io.Reader) (*entities.MediaAsset, error) {
	if size > u.maxBytes {
		return nil, tooLarge(u.maxBytes)
	}
	if strings.TrimSpace(filename) == "" {
		return nil, domainerrors.Validation(map[string]string{"file": "File is required"})
	}

	obj, err := u.files.Upload(ctx, folder, filename, contentType, io.LimitReader(r, u.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if obj.Size > u.maxBytes {
		u.discard(ctx, obj.Key)
		return nil, tooLarge(u.maxBytes)
	}

	asset, err := u.media.Create(ctx, &entities.MediaAsset{
		Filename:    filepath.Base(filename),
		URL:         obj.URL,
		Size:        obj.Size,
		Folder:      folder,
		ContentType: contentType,
		StorageKey:  obj.Key,
	})
	if err != nil {
		u.discard(ctx, obj.Key)
		return nil, err
	}
	return asset, nil
}

// UploadDocument stores an applicant's document and returns its object.
func (u *UploadUsecase) UploadDocument(ctx context.Context, in DocumentUpload) (*storage.Object, error) {
	fields := map[string]string{}
	if strings.TrimSpace(in.File) == "" {
		fields["file"] = "File is required"
	}
	if strings.TrimSpace(in.FileName) == "" {
		fields["fileName"] = "File name is required"
	}
	if !documentKinds[in.DocumentType] {
		fields["documentType"] = "Document type must be one of: resume, coverLetter, portfolio"
	}
	if len(fields) > 0 {
		return nil, domainerrors.Validation(fields)
	}

	declared, encoded := splitDataURL(in.File)
	// base64 grows data by 4/3; reject obviously oversized payloads before decoding
	if int64(len(encoded)) > u.maxBytes/3*4+8 {
		return nil, tooLarge(u.maxBytes)
	}
	data, err := decodeBase64(encoded)
	if err != nil {
		return nil, domainerrors.Validation(map[string]string{"file": "File is not valid base64 data"})
	}
	if int64(len(data)) > u.maxBytes {
		return nil, tooLarge(u.maxBytes)
	}

	contentType := documentContentType(declared, in.FileName, data)
	if !acceptedDocument(contentType) {
		return nil, domainerrors.UnsupportedMedia("Only PDF, DOC, DOCX, JPEG and PNG files are accepted")
	}

	return u.files.Upload(ctx, "applications/"+in.DocumentType, in.FileName, contentType, bytes.NewReader(data))
}

func (u *UploadUsecase) discard(ctx context.Context, key string) {
	if err := u.files.Delete(ctx, key); err != nil {
		logger.Warn(ctx, "Orphaned upload not removed", zap.String("key", key), zap.Error(err))
	}
}

func tooLarge(limit int64) error {
	return domainerrors.PayloadTooLarge(fmt.Sprintf("File must be %dMB or smaller", limit/(1024*1024)))
}

// splitDataURL returns the declared MIME type and the base64 payload.
func splitDataURL(file string) (string, string) {
	file = strings.TrimSpace(file)
	if !strings.HasPrefix(file, "data:") {
		return "", file
	}
	header, payload, ok := strings.Cut(file, ",")
	if !ok {
		return "", ""
	}
	mediaType, _, _ := strings.Cut(strings.TrimPrefix(header, "data:"), ";")
	return strings.ToLower(mediaType), payload
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil, fmt.Errorf("empty payload")
	}
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

// documentContentType prefers the declared type, then the file extension, then sniffing.
func documentContentType(declared, fileName string, data []byte) string {
	if declared != "" {
		return declared
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); byExt != "" {
		mediaType, _, _ := strings.Cut(byExt, ";")
		return mediaType
	}
	mediaType, _, _ := strings.Cut(http.DetectContentType(data), ";")
	return mediaType
}
