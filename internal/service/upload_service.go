package service

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"notestash/internal/contract"
	"notestash/internal/infrastructure/aws/storage"
	"notestash/internal/utils"
	"notestash/internal/utils/apierror"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// DefaultUploadService links uploaded blobs to notes: it stores the bytes
// under a uuid object name and hands back the reference the client embeds
// into a note via create or update.
type DefaultUploadService struct {
	S3 storage.S3Client
}

func NewUploadService(s3 storage.S3Client) *DefaultUploadService {
	return &DefaultUploadService{S3: s3}
}

func (u *DefaultUploadService) UploadAttachment(ctx context.Context, fileHeader *multipart.FileHeader) (*contract.AttachmentPayload, apierror.ErrorResponse) {
	if apierr := checkAttachmentFile(fileHeader); apierr != nil {
		return nil, apierr
	}

	data, apierr := readAttachmentFile(fileHeader)
	if apierr != nil {
		return nil, apierr
	}

	ext := filepath.Ext(fileHeader.Filename)
	key := storage.PathAttachments + uuid.NewString() + ext
	mimeType := resolveMimeType(fileHeader, ext, data)

	url, err := u.S3.UploadFile(ctx, data, key, mimeType)
	if err != nil {
		log.Errorf("failed to upload attachment: %v", err)
		return nil, apierror.InternalServerError
	}

	return &contract.AttachmentPayload{
		Name: fileHeader.Filename,
		Mime: mimeType,
		Size: int64(len(data)),
		URL:  url,
	}, nil
}

// resolveMimeType always yields a non-empty type: the reference embedded into
// a note requires one, and it must match what the blob was stored under.
func resolveMimeType(fileHeader *multipart.FileHeader, ext string, data []byte) string {
	if mimeType := fileHeader.Header.Get("Content-Type"); mimeType != "" {
		return mimeType
	}
	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		return mimeType
	}
	return http.DetectContentType(data)
}

func checkAttachmentFile(fileHeader *multipart.FileHeader) apierror.ErrorResponse {
	if fileHeader.Size > contract.MaxAttachmentSizeBytes {
		return apierror.NewFileTooLargeError(contract.MaxAttachmentSizeBytes)
	}

	if strings.TrimSpace(fileHeader.Filename) == "" {
		return apierror.MissingFileNameError
	}

	if ext, ok := utils.CheckFileExt(fileHeader.Filename, contract.ValidAttachmentFileTypes); !ok {
		return apierror.NewInvalidFileExtError(ext)
	}
	return nil
}

func readAttachmentFile(fileHeader *multipart.FileHeader) ([]byte, apierror.ErrorResponse) {
	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("failed to open file: %v", err)
		return nil, apierror.InternalServerError
	}
	// The multipart temp file is released whether or not the upload goes
	// through.
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("failed to read file: %v", err)
		return nil, apierror.InternalServerError
	}
	return data, nil
}
