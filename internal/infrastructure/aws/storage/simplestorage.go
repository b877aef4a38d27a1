package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const PathAttachments = "attachments/"

type S3Client interface {
	// UploadFile stores the blob under the given key and returns a stable
	// retrieval URL for it.
	UploadFile(ctx context.Context, data []byte, key, mimeType string) (string, error)
	// DeleteFile removes the blob. Deleting a missing key is not an error,
	// so the store and the bucket may be reconciled in any order.
	DeleteFile(ctx context.Context, key string) error
}

type storageClient struct {
	bucket  string
	baseURL string
	client  *s3.Client
}

func NewStorageClient() (S3Client, error) {
	region := os.Getenv("AWS_S3_REGION")
	bucket := os.Getenv("S3_BUCKET_NAME")
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	// S3_PUBLIC_URL overrides the default virtual-hosted URL (e.g. a CDN)
	baseURL := os.Getenv("S3_PUBLIC_URL")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	client := s3.NewFromConfig(cfg)
	return &storageClient{
		bucket:  bucket,
		baseURL: baseURL,
		client:  client,
	}, nil
}

func (s *storageClient) UploadFile(ctx context.Context, data []byte, key, mimeType string) (string, error) {
	if key == "" {
		return "", errors.New("object key is empty")
	}

	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(key))
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: &mimeType,
	}

	_, err := s.client.PutObject(ctx, input)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

func (s *storageClient) DeleteFile(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("object key is empty")
	}

	input := &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}

	_, err := s.client.DeleteObject(ctx, input)

	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return nil
	}
	return err
}
